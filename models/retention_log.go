// models/retention_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetentionLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // sms
	DaysInactive int
	SentAt       time.Time
	gorm.Model
}

func (r *RetentionLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
