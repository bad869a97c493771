package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int       `gorm:"default:30" json:"duration"` // in minutes
	// No default tag: GORM drops zero-value fields that carry one on Create,
	// which would silently persist IsActive=false rows as active. Callers set
	// the flag explicitly.
	IsActive bool `json:"isActive"`

	Visits []Visit `gorm:"foreignKey:ServiceID" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
