package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminUser back-office operator account
type AdminUser struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"default:''" json:"name"`
	Role         string         `gorm:"type:varchar(20);not null;default:'admin';index" json:"role"` // admin / super_admin
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`
	LastSignInAt *time.Time     `json:"last_sign_in_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (AdminUser) TableName() string {
	return "admin_users"
}
