package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db)), db
}

func createWishlistTestProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Name:     slug,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestWishlistToggleRoundTrip(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := createWishlistTestProduct(t, db, "sonic-brush-pro")

	saved, err := svc.Toggle(1, product.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !saved {
		t.Fatalf("first toggle want saved=true")
	}

	contains, err := svc.Contains(1, product.ID)
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if !contains {
		t.Fatalf("product should be in wishlist after first toggle")
	}

	saved, err = svc.Toggle(1, product.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if saved {
		t.Fatalf("second toggle want saved=false")
	}

	contains, err = svc.Contains(1, product.ID)
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if contains {
		t.Fatalf("product should be gone after second toggle")
	}
}

func TestWishlistToggleUnknownProduct(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)
	if _, err := svc.Toggle(1, 9999); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("want ErrProductNotAvailable got %v", err)
	}
}

func TestWishlistIsPerProfile(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := createWishlistTestProduct(t, db, "whitening-strips")

	if _, err := svc.Toggle(1, product.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	contains, err := svc.Contains(2, product.ID)
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if contains {
		t.Fatalf("wishlist entry leaked to another profile")
	}
}

func TestWishlistListHidesVanishedProducts(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	kept := createWishlistTestProduct(t, db, "kept-product")
	removed := createWishlistTestProduct(t, db, "removed-product")

	if _, err := svc.Toggle(1, kept.ID); err != nil {
		t.Fatalf("toggle kept failed: %v", err)
	}
	if _, err := svc.Toggle(1, removed.ID); err != nil {
		t.Fatalf("toggle removed failed: %v", err)
	}
	if err := db.Delete(&models.Product{}, removed.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].ProductID != kept.ID {
		t.Fatalf("wrong product in list: %d", items[0].ProductID)
	}
}
