package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment methods accepted at the counter.
const (
	PaymentCash        = "cash"
	PaymentMobileMoney = "mobile_money"
	PaymentCard        = "card"
)

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentMobileMoney, PaymentCard:
		return true
	}
	return false
}

// Visit is the append-only transaction log. Rows are never updated or deleted
// once written; customer counters are derived from them.
type Visit struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	AmountPaid      float64 `gorm:"type:decimal(10,2);not null" json:"amountPaid"`
	PaymentMethod   string  `gorm:"type:varchar(20);default:'cash'" json:"paymentMethod"`
	IsLoyaltyReward bool    `gorm:"default:false" json:"isLoyaltyReward"`

	VisitedAt time.Time `gorm:"not null" json:"visitedAt"`
	// Calendar day of the visit, kept separate so daily grouping works the
	// same on Postgres and SQLite.
	VisitDate time.Time `gorm:"type:date;index;not null" json:"visitDate"`

	Notes string `json:"notes"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Service  Service  `gorm:"foreignKey:ServiceID" json:"-"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
