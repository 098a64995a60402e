package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug string, price float64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Name:     slug,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		IsActive: active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartAddItemMergesQuantities(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "mint-floss-picks", 8.99, true)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(ctx, 1, product.ID, 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	cart, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", cart.Items[0].Quantity)
	}
	if cart.ItemCount != 5 {
		t.Fatalf("item count want 5 got %d", cart.ItemCount)
	}
}

func TestCartSubtotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	floss := createCartTestProduct(t, db, "mint-floss-picks", 8.99, true)
	brush := createCartTestProduct(t, db, "sonic-brush-pro", 59.99, true)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1, floss.ID, 2); err != nil {
		t.Fatalf("add floss failed: %v", err)
	}
	if err := svc.AddItem(ctx, 1, brush.ID, 1); err != nil {
		t.Fatalf("add brush failed: %v", err)
	}

	cart, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	want := decimal.NewFromFloat(77.97)
	if !cart.Subtotal.Equal(want) {
		t.Fatalf("subtotal want %s got %s", want, cart.Subtotal)
	}
}

func TestCartDropsDeactivatedProductOnRead(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "charcoal-toothpaste", 12.49, true)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	cart, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(cart.Items))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("profile_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("stale cart line not removed, count %d", count)
	}
}

func TestCartAddItemRejectsInvalidInput(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	inactive := createCartTestProduct(t, db, "retired-item", 5.00, false)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1, inactive.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("inactive product want ErrProductNotAvailable got %v", err)
	}
	if err := svc.AddItem(ctx, 1, 9999, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("missing product want ErrProductNotAvailable got %v", err)
	}
	if err := svc.AddItem(ctx, 1, inactive.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity want ErrInvalidQuantity got %v", err)
	}
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "travel-brush-kit", 18.00, true)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.UpdateQuantity(1, product.ID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}

	cart, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(cart.Items))
	}

	if err := svc.UpdateQuantity(1, product.ID, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative quantity want ErrInvalidQuantity got %v", err)
	}
}

func TestCartClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	a := createCartTestProduct(t, db, "item-a", 1.00, true)
	b := createCartTestProduct(t, db, "item-b", 2.00, true)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1, a.ID, 1); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if err := svc.AddItem(ctx, 1, b.ID, 1); err != nil {
		t.Fatalf("add b failed: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	cart, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 || cart.ItemCount != 0 {
		t.Fatalf("cart not empty after clear: %d items", len(cart.Items))
	}
}

func TestCartLastAddedSlot(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "whitening-strips", 24.99, true)
	ctx := context.Background()

	if err := svc.AddItem(ctx, 42, product.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	slot, found, err := svc.LastAdded(ctx, 42)
	if err != nil {
		t.Fatalf("last added failed: %v", err)
	}
	if !found || slot == nil {
		t.Fatalf("last added slot missing right after add")
	}
	if slot.ProductID != product.ID || slot.Quantity != 3 {
		t.Fatalf("slot mismatch: product %d qty %d", slot.ProductID, slot.Quantity)
	}

	_, found, err = svc.LastAdded(ctx, 43)
	if err != nil {
		t.Fatalf("last added for other profile failed: %v", err)
	}
	if found {
		t.Fatalf("slot leaked to another profile")
	}
}
