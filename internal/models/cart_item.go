package models

import "time"

// CartItem persisted cart line, one row per (profile, product)
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_cart_profile_product" json:"profile_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_profile_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName table name
func (CartItem) TableName() string {
	return "cart_items"
}
