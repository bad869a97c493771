package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null;uniqueIndex" json:"phone"`
	PlateNumber string `gorm:"not null;index" json:"plateNumber"`
	CarModel    string `json:"carModel"`
	Notes       string `json:"notes"`

	// Derived counters maintained by the check-in transaction. They must stay
	// reconstructible from the visit log at all times.
	TotalVisits   int     `gorm:"default:0" json:"totalVisits"`
	TotalSpent    float64 `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`
	LoyaltyPoints int     `gorm:"default:0" json:"loyaltyPoints"`

	JoinedDate time.Time  `gorm:"not null" json:"joinedDate"`
	LastVisit  *time.Time `json:"lastVisit"`

	Visits []Visit `gorm:"foreignKey:CustomerID" json:"visits,omitempty"`

	gorm.Model `json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
