package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile customer account
type Profile struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `gorm:"default:''" json:"name"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // bumped to revoke all outstanding tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`              // tokens issued before this instant are rejected
	EmailConfirmedAt   *time.Time     `json:"email_confirmed_at"`          // nil while the OTP flow is incomplete
	LastSignInAt       *time.Time     `json:"last_sign_in_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Profile) TableName() string {
	return "profiles"
}
