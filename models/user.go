package models

import (
	"time"

	"safiwash-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `json:"fullName"`
	Role     string    `gorm:"type:varchar(20);default:'manager'" json:"role"`

	LastLogin *time.Time `json:"lastLogin"`
	// Set explicitly on create; a default tag would make GORM drop an
	// explicit false on insert.
	IsActive bool `json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
