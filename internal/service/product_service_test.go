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

func setupProductServiceTest(t *testing.T) *ProductService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db))
}

func productInput(slug, name string, active bool) ProductInput {
	return ProductInput{
		Slug:     slug,
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
		IsActive: active,
	}
}

func TestProductCreateValidatesSlug(t *testing.T) {
	svc := setupProductServiceTest(t)

	for _, slug := range []string{"", "UPPER CASE", "trailing-", "-leading", "two--dashes", "ünïcode"} {
		if _, err := svc.Create(productInput(slug, "Name", true)); !errors.Is(err, ErrInvalidSlug) {
			t.Fatalf("slug %q want ErrInvalidSlug got %v", slug, err)
		}
	}

	product, err := svc.Create(productInput("Sonic-Brush-Pro", "Sonic Brush Pro", true))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Slug != "sonic-brush-pro" {
		t.Fatalf("slug not normalized: %s", product.Slug)
	}
}

func TestProductCreateRejectsDuplicateSlug(t *testing.T) {
	svc := setupProductServiceTest(t)

	if _, err := svc.Create(productInput("mint-floss", "Mint Floss", true)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(productInput("mint-floss", "Other", true)); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists got %v", err)
	}
}

func TestProductCreateRequiresName(t *testing.T) {
	svc := setupProductServiceTest(t)
	if _, err := svc.Create(productInput("mint-floss", "   ", true)); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("want ErrNameRequired got %v", err)
	}
}

func TestProductUpdateKeepsOwnSlug(t *testing.T) {
	svc := setupProductServiceTest(t)

	product, err := svc.Create(productInput("mint-floss", "Mint Floss", true))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// re-saving with the same slug is not a collision
	updated, err := svc.Update(product.ID, productInput("mint-floss", "Mint Floss Picks", true))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Mint Floss Picks" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
}

func TestProductStorefrontListHidesInactive(t *testing.T) {
	svc := setupProductServiceTest(t)

	if _, err := svc.Create(productInput("active-one", "Active", true)); err != nil {
		t.Fatalf("create active failed: %v", err)
	}
	if _, err := svc.Create(productInput("hidden-one", "Hidden", false)); err != nil {
		t.Fatalf("create hidden failed: %v", err)
	}

	visible, total, err := svc.List(repository.ProductListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(visible) != 1 || visible[0].Slug != "active-one" {
		t.Fatalf("storefront list leaked inactive products: total=%d", total)
	}

	all, total, err := svc.ListAdmin(repository.ProductListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("admin list want 2 got %d", total)
	}
}

func TestProductGetBySlugOnlyActive(t *testing.T) {
	svc := setupProductServiceTest(t)

	if _, err := svc.Create(productInput("hidden-one", "Hidden", false)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.GetBySlug("hidden-one"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive product want ErrNotFound got %v", err)
	}
	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product want ErrNotFound got %v", err)
	}
}
