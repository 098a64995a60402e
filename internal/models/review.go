package models

import (
	"time"

	"gorm.io/gorm"
)

// Review product review
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	ProfileID uint           `gorm:"index;not null" json:"profile_id"`
	Rating    int            `gorm:"not null" json:"rating"` // 1..5
	Title     string         `json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Status    string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending / approved
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

// TableName table name
func (Review) TableName() string {
	return "reviews"
}
