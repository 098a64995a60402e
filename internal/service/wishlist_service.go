package service

import (
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
)

// WishlistService saved products per customer
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates the wishlist service
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Toggle flips wishlist membership atomically.
// Returns whether the product is saved after the call.
func (s *WishlistService) Toggle(profileID, productID uint) (bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, ErrProductNotAvailable
	}
	return s.wishlistRepo.Toggle(profileID, productID)
}

// List wishlist entries with products attached
func (s *WishlistService) List(profileID uint) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByProfile(profileID)
	if err != nil {
		return nil, err
	}
	// entries whose product is gone are not shown
	visible := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		visible = append(visible, item)
	}
	return visible, nil
}

// Contains membership check
func (s *WishlistService) Contains(profileID, productID uint) (bool, error) {
	return s.wishlistRepo.Contains(profileID, productID)
}
