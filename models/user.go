package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an authentication identity. FullName is sign-up metadata; the
// editable display name lives on Profile.
type User struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	Email             string         `gorm:"uniqueIndex;size:150" json:"email"`
	Password          string         `gorm:"size:255" json:"-"` // bcrypt hash
	FullName          string         `gorm:"size:255" json:"full_name"`
	EmailConfirmedAt  *time.Time     `json:"email_confirmed_at"`
	ConfirmToken      *string        `gorm:"size:128;index" json:"-"`
	ResetToken        *string        `gorm:"size:128;index" json:"-"`
	ResetTokenExpires *time.Time     `json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
