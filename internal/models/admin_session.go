package models

import "time"

// AdminSession server-side admin session with sliding expiry
type AdminSession struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Token       string    `gorm:"uniqueIndex;not null" json:"-"` // opaque uuid handed to the client
	AdminUserID uint      `gorm:"index;not null" json:"admin_user_id"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	AdminUser *AdminUser `gorm:"foreignKey:AdminUserID" json:"admin_user,omitempty"`
}

// TableName table name
func (AdminSession) TableName() string {
	return "admin_sessions"
}
