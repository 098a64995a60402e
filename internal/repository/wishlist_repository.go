package repository

import (
	"errors"
	"strings"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository wishlist data access
type WishlistRepository interface {
	ListByProfile(profileID uint) ([]models.WishlistItem, error)
	Toggle(profileID, productID uint) (bool, error)
	Contains(profileID, productID uint) (bool, error)
}

// GormWishlistRepository GORM implementation
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates the wishlist repository
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByProfile wishlist entries with products preloaded
func (r *GormWishlistRepository) ListByProfile(profileID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").Where("profile_id = ?", profileID).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Toggle flips membership with a single conditional write: the delete decides.
// If the delete removed a row the product was saved and is now gone; if it
// removed nothing the insert adds it. The unique index arbitrates concurrent
// inserts. Returns whether the product ended up in the wishlist.
func (r *GormWishlistRepository) Toggle(profileID, productID uint) (bool, error) {
	result := r.db.Where("profile_id = ? AND product_id = ?", profileID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	err := r.db.Create(&models.WishlistItem{
		ProfileID: profileID,
		ProductID: productID,
	}).Error
	if err != nil && isUniqueViolation(err) {
		// a concurrent toggle already inserted the row; membership holds
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Contains membership check
func (r *GormWishlistRepository) Contains(profileID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("profile_id = ? AND product_id = ?", profileID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
