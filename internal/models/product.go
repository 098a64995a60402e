package models

import (
	"time"

	"gorm.io/gorm"
)

// Product catalog item
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Images      StringArray    `gorm:"type:json" json:"images"`
	Category    string         `gorm:"type:varchar(50);index" json:"category"`
	Tags        StringArray    `gorm:"type:json" json:"tags"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	IsFeatured  bool           `gorm:"default:false;index" json:"is_featured"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Product) TableName() string {
	return "products"
}
