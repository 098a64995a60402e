package service

import (
	"regexp"
	"strings"

	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ProductService catalog management
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates the product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput admin create/update payload
type ProductInput struct {
	Slug        string             `json:"slug"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       models.Money       `json:"price"`
	Images      models.StringArray `json:"images"`
	Category    string             `json:"category"`
	Tags        models.StringArray `json:"tags"`
	Stock       int                `json:"stock"`
	IsActive    bool               `json:"is_active"`
	IsFeatured  bool               `json:"is_featured"`
	SortOrder   int                `json:"sort_order"`
}

// List storefront product list; only active products are visible
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.productRepo.List(filter)
}

// ListAdmin back-office product list, inactive included
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	return s.productRepo.List(filter)
}

// GetBySlug storefront detail lookup
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetByID back-office detail lookup
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create creates a product
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	slug, err := s.validateSlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	product := &models.Product{
		Slug:        slug,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Images:      input.Images,
		Category:    strings.TrimSpace(input.Category),
		Tags:        input.Tags,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
		IsFeatured:  input.IsFeatured,
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves a product
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	slug, err := s.validateSlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	product.Slug = slug
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Images = input.Images
	product.Category = strings.TrimSpace(input.Category)
	product.Tags = input.Tags
	product.Stock = input.Stock
	product.IsActive = input.IsActive
	product.IsFeatured = input.IsFeatured
	product.SortOrder = input.SortOrder
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateSlug(slug string, excludeID *uint) (string, error) {
	normalized := normalizeSlug(slug)
	if normalized == "" {
		return "", ErrInvalidSlug
	}
	count, err := s.productRepo.CountBySlug(normalized, excludeID)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrSlugExists
	}
	return normalized, nil
}

func normalizeSlug(slug string) string {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(normalized) {
		return ""
	}
	return normalized
}
