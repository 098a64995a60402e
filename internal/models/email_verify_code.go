package models

import (
	"time"

	"gorm.io/gorm"
)

// EmailVerifyCode email OTP record
type EmailVerifyCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"index;not null" json:"email"`
	ProfileID    *uint          `gorm:"index" json:"profile_id"`
	Purpose      string         `gorm:"index;not null" json:"purpose"` // signup / reset
	Code         string         `gorm:"not null" json:"-"`
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`
	VerifiedAt   *time.Time     `gorm:"index" json:"verified_at"`
	AttemptCount int            `gorm:"default:0" json:"attempt_count"`
	SentAt       time.Time      `gorm:"index" json:"sent_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (EmailVerifyCode) TableName() string {
	return "email_verify_codes"
}
