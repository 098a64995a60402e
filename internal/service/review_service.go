package service

import (
	"strings"

	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
)

// ReviewService product reviews with moderation.
// New reviews start pending; only approved ones are publicly visible.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates the review service
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Create submits a review for moderation
func (s *ReviewService) Create(profileID, productID uint, rating int, title, body string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	review := &models.Review{
		ProductID: productID,
		ProfileID: profileID,
		Rating:    rating,
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		Status:    constants.ReviewStatusPending,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListApproved public review list for a product
func (s *ReviewService) ListApproved(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
		Status:    constants.ReviewStatusApproved,
	})
}

// ListAdmin moderation queue
func (s *ReviewService) ListAdmin(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// Approve publishes a review
func (s *ReviewService) Approve(id uint) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	return s.reviewRepo.UpdateStatus(id, constants.ReviewStatusApproved)
}

// Delete removes a review
func (s *ReviewService) Delete(id uint) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	return s.reviewRepo.Delete(id)
}
