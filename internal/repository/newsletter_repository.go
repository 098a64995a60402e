package repository

import (
	"errors"
	"time"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository newsletter subscriber data access
type NewsletterRepository interface {
	Subscribe(email string, now time.Time) (*models.NewsletterSubscriber, error)
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	List(page, pageSize int) ([]models.NewsletterSubscriber, int64, error)
}

// GormNewsletterRepository GORM implementation
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates the newsletter repository
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// Subscribe records an opt-in; re-subscribing an existing email is idempotent
// and clears any earlier unsubscribe.
func (r *GormNewsletterRepository) Subscribe(email string, now time.Time) (*models.NewsletterSubscriber, error) {
	existing, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.UnsubscribedAt != nil {
			existing.UnsubscribedAt = nil
			existing.SubscribedAt = now
			if err := r.db.Save(existing).Error; err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	subscriber := &models.NewsletterSubscriber{
		Email:        email,
		SubscribedAt: now,
	}
	if err := r.db.Create(subscriber).Error; err != nil {
		return nil, err
	}
	return subscriber, nil
}

// GetByEmail looks a subscriber up by email
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// List subscriber list for the admin panel
func (r *GormNewsletterRepository) List(page, pageSize int) ([]models.NewsletterSubscriber, int64, error) {
	query := r.db.Model(&models.NewsletterSubscriber{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var subscribers []models.NewsletterSubscriber
	if err := query.Order("id DESC").Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}
