package service

import (
	"context"
	"time"

	"github.com/smiley-shop/smiley/internal/cache"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService persisted per-customer cart.
// Adding a product that is already in the cart merges into the existing line.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates the cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartItemDetail one cart line enriched with product data
type CartItemDetail struct {
	ProductID uint         `json:"product_id"`
	Slug      string       `json:"slug"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
}

// CartDetail the whole cart with aggregates
type CartDetail struct {
	Items     []CartItemDetail `json:"items"`
	Subtotal  models.Money     `json:"subtotal"`
	ItemCount int              `json:"item_count"`
}

// AddItem merges a product into the cart and records the last-added slot
func (s *CartService) AddItem(ctx context.Context, profileID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}
	if err := s.cartRepo.AddQuantity(profileID, productID, quantity); err != nil {
		return err
	}
	_ = cache.SetLastAdded(ctx, profileID, cache.LastAddedSlot{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().UnixMilli(),
	})
	return nil
}

// UpdateQuantity replaces a line quantity; zero removes the line
func (s *CartService) UpdateQuantity(profileID, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	return s.cartRepo.SetQuantity(profileID, productID, quantity)
}

// RemoveItem removes one line
func (s *CartService) RemoveItem(profileID, productID uint) error {
	return s.cartRepo.DeleteByProfileAndProduct(profileID, productID)
}

// Clear empties the cart
func (s *CartService) Clear(profileID uint) error {
	return s.cartRepo.ClearByProfile(profileID)
}

// GetCart reads the cart with subtotal and item count.
// Lines whose product vanished or was deactivated are dropped on read.
func (s *CartService) GetCart(profileID uint) (*CartDetail, error) {
	items, err := s.cartRepo.ListByProfile(profileID)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{Items: make([]CartItemDetail, 0, len(items))}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			_ = s.cartRepo.DeleteByProfileAndProduct(profileID, item.ProductID)
			continue
		}
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		image := ""
		if len(item.Product.Images) > 0 {
			image = item.Product.Images[0]
		}
		detail.Items = append(detail.Items, CartItemDetail{
			ProductID: item.ProductID,
			Slug:      item.Product.Slug,
			Name:      item.Product.Name,
			Image:     image,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
		})
		detail.ItemCount += item.Quantity
		subtotal = subtotal.Add(lineTotal)
	}
	detail.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return detail, nil
}

// LastAdded reads the short-lived last-added confirmation slot
func (s *CartService) LastAdded(ctx context.Context, profileID uint) (*cache.LastAddedSlot, bool, error) {
	return cache.GetLastAdded(ctx, profileID)
}
