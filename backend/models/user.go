package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash []byte `gorm:"not null" json:"-"`
	Salt         []byte `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, admin
}

// PasswordResetToken is a single-use ticket mapping an unguessable token to
// an account. Consumed (hard-deleted) on the first successful password
// update, expired rows are purged when seen.
type PasswordResetToken struct {
	gorm.Model
	Token     string    `gorm:"unique;not null"`
	UserID    uint      `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
