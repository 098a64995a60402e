package models

import (
	"time"

	"gorm.io/gorm"
)

// Post blog article
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	Body        string         `gorm:"type:text" json:"body"`
	Tag         string         `gorm:"type:varchar(50);index" json:"tag"`
	Thumbnail   string         `json:"thumbnail"`
	IsFeatured  bool           `gorm:"default:false;index" json:"is_featured"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Post) TableName() string {
	return "posts"
}
