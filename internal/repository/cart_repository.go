package repository

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// CartRepository cart data access
type CartRepository interface {
	ListByProfile(profileID uint) ([]models.CartItem, error)
	AddQuantity(profileID, productID uint, quantity int) error
	SetQuantity(profileID, productID uint, quantity int) error
	DeleteByProfileAndProduct(profileID, productID uint) error
	ClearByProfile(profileID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM implementation
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates the cart repository
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByProfile cart lines with products preloaded
func (r *GormCartRepository) ListByProfile(profileID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("profile_id = ?", profileID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddQuantity merges into the existing line; quantities accumulate.
func (r *GormCartRepository) AddQuantity(profileID, productID uint, quantity int) error {
	var existing models.CartItem
	err := r.db.Where("profile_id = ? AND product_id = ?", profileID, productID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.CartItem{
			ProfileID: profileID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

// SetQuantity replaces the line quantity; zero or below removes the line.
func (r *GormCartRepository) SetQuantity(profileID, productID uint, quantity int) error {
	if quantity <= 0 {
		return r.DeleteByProfileAndProduct(profileID, productID)
	}
	var existing models.CartItem
	err := r.db.Where("profile_id = ? AND product_id = ?", profileID, productID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.CartItem{
			ProfileID: profileID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Update("quantity", quantity).Error
}

// DeleteByProfileAndProduct removes a cart line
func (r *GormCartRepository) DeleteByProfileAndProduct(profileID, productID uint) error {
	return r.db.Where("profile_id = ? AND product_id = ?", profileID, productID).Delete(&models.CartItem{}).Error
}

// ClearByProfile empties the cart
func (r *GormCartRepository) ClearByProfile(profileID uint) error {
	return r.db.Where("profile_id = ?", profileID).Delete(&models.CartItem{}).Error
}
