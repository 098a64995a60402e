package models

import "time"

// NewsletterSubscriber newsletter opt-in record
type NewsletterSubscriber struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt   time.Time  `gorm:"index" json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName table name
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
