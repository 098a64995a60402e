package models

import "time"

// PendingSignup server-side handle for an account awaiting email confirmation.
// The cleartext password is never stored or replayed.
type PendingSignup struct {
	Token     string    `gorm:"primarykey" json:"-"` // opaque uuid
	ProfileID uint      `gorm:"index;not null" json:"profile_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name
func (PendingSignup) TableName() string {
	return "pending_signups"
}
