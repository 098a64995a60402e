package repository

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository customer account data access
type ProfileRepository interface {
	GetByEmail(email string) (*models.Profile, error)
	GetByID(id uint) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	List(filter ProfileListFilter) ([]models.Profile, int64, error)
	BumpTokenVersion(id uint) error
	Delete(id uint) error
}

// GormProfileRepository GORM implementation
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates the profile repository
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetByEmail looks a profile up by email
func (r *GormProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByID looks a profile up by id
func (r *GormProfileRepository) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create creates a profile
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update saves a profile
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// List customer list for the admin panel
func (r *GormProfileRepository) List(filter ProfileListFilter) ([]models.Profile, int64, error) {
	query := r.db.Model(&models.Profile{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var profiles []models.Profile
	if err := query.Order("id DESC").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// BumpTokenVersion revokes all outstanding tokens for a profile
func (r *GormProfileRepository) BumpTokenVersion(id uint) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}

// Delete soft-deletes a profile
func (r *GormProfileRepository) Delete(id uint) error {
	return r.db.Delete(&models.Profile{}, id).Error
}
