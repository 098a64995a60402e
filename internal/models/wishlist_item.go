package models

import "time"

// WishlistItem saved product, one row per (profile, product)
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_wishlist_profile_product" json:"profile_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_profile_product" json:"product_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
