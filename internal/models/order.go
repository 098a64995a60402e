package models

import (
	"time"

	"gorm.io/gorm"
)

// Order customer order
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`
	ProfileID         uint           `gorm:"index;not null" json:"profile_id"`
	Email             string         `gorm:"index" json:"email"`
	Status            string         `gorm:"index;not null" json:"status"` // pending / paid / fulfilled / cancelled
	Currency          string         `gorm:"not null" json:"currency"`
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	CheckoutSessionID string         `gorm:"index" json:"-"` // hosted checkout session id
	ExpiresAt         *time.Time     `gorm:"index" json:"expires_at"`
	PaidAt            *time.Time     `gorm:"index" json:"paid_at"`
	CancelledAt       *time.Time     `gorm:"index" json:"cancelled_at"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName table name
func (Order) TableName() string {
	return "orders"
}
