package repository

import (
	"errors"
	"time"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// PendingSignupRepository pending-signup token data access
type PendingSignupRepository interface {
	Create(pending *models.PendingSignup) error
	GetByToken(token string) (*models.PendingSignup, error)
	DeleteByToken(token string) error
	DeleteExpired(now time.Time) (int64, error)
}

// GormPendingSignupRepository GORM implementation
type GormPendingSignupRepository struct {
	db *gorm.DB
}

// NewPendingSignupRepository creates the pending-signup repository
func NewPendingSignupRepository(db *gorm.DB) *GormPendingSignupRepository {
	return &GormPendingSignupRepository{db: db}
}

// Create stores a pending-signup token
func (r *GormPendingSignupRepository) Create(pending *models.PendingSignup) error {
	return r.db.Create(pending).Error
}

// GetByToken looks a token up
func (r *GormPendingSignupRepository) GetByToken(token string) (*models.PendingSignup, error) {
	var pending models.PendingSignup
	if err := r.db.Where("token = ?", token).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pending, nil
}

// DeleteByToken consumes a token
func (r *GormPendingSignupRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.PendingSignup{}).Error
}

// DeleteExpired removes stale tokens
func (r *GormPendingSignupRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.PendingSignup{})
	return result.RowsAffected, result.Error
}
