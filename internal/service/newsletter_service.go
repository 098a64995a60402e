package service

import (
	"time"

	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
)

// NewsletterService newsletter opt-ins
type NewsletterService struct {
	newsletterRepo repository.NewsletterRepository
}

// NewNewsletterService creates the newsletter service
func NewNewsletterService(newsletterRepo repository.NewsletterRepository) *NewsletterService {
	return &NewsletterService{newsletterRepo: newsletterRepo}
}

// Subscribe records an opt-in; subscribing twice is a no-op
func (s *NewsletterService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.newsletterRepo.Subscribe(normalized, time.Now())
}

// List subscriber list for the admin panel
func (s *NewsletterService) List(page, pageSize int) ([]models.NewsletterSubscriber, int64, error) {
	return s.newsletterRepo.List(page, pageSize)
}
