package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Profile{}, &models.Product{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Setting{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{Order: config.OrderConfig{PaymentExpireMinutes: 30}}
	svc := NewOrderService(
		cfg,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewProfileRepository(db),
		NewSettingService(repository.NewSettingRepository(db)),
		nil,
	)
	return svc, db
}

func createTestOrder(t *testing.T, db *gorm.DB, orderNo, status string, expiresAt *time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		ProfileID:   1,
		Email:       "buyer@smiley.example",
		Status:      status,
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(8.99)),
		ExpiresAt:   expiresAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderAdminCancelPending(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, "SM1001", constants.OrderStatusPending, nil)

	updated, err := svc.UpdateStatusAdmin(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", updated.Status)
	}
	if updated.CancelledAt == nil {
		t.Fatalf("cancelled_at not set")
	}
}

func TestOrderAdminFulfillPaid(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, "SM1002", constants.OrderStatusPaid, nil)

	updated, err := svc.UpdateStatusAdmin(order.ID, constants.OrderStatusFulfilled)
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if updated.Status != constants.OrderStatusFulfilled {
		t.Fatalf("status want fulfilled got %s", updated.Status)
	}
}

func TestOrderAdminRejectsOtherTransitions(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	cases := []struct {
		from string
		to   string
	}{
		{constants.OrderStatusPending, constants.OrderStatusPaid},
		{constants.OrderStatusPending, constants.OrderStatusFulfilled},
		{constants.OrderStatusPaid, constants.OrderStatusCancelled},
		{constants.OrderStatusCancelled, constants.OrderStatusPending},
		{constants.OrderStatusFulfilled, constants.OrderStatusCancelled},
	}
	for i, tc := range cases {
		order := createTestOrder(t, db, fmt.Sprintf("SM2%03d", i), tc.from, nil)
		if _, err := svc.UpdateStatusAdmin(order.ID, tc.to); !errors.Is(err, ErrInvalidOrderStatus) {
			t.Fatalf("%s -> %s want ErrInvalidOrderStatus got %v", tc.from, tc.to, err)
		}
	}
}

func TestOrderAdminUpdateUnknownOrder(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	if _, err := svc.UpdateStatusAdmin(9999, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestCancelExpiredOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	expired := createTestOrder(t, db, "SM3001", constants.OrderStatusPending, &past)
	fresh := createTestOrder(t, db, "SM3002", constants.OrderStatusPending, &future)
	paid := createTestOrder(t, db, "SM3003", constants.OrderStatusPaid, &past)

	got, err := svc.CancelExpiredOrder(expired.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("expired order want cancelled got %s", got.Status)
	}

	got, err = svc.CancelExpiredOrder(fresh.ID)
	if err != nil {
		t.Fatalf("cancel fresh failed: %v", err)
	}
	if got.Status != constants.OrderStatusPending {
		t.Fatalf("fresh order must stay pending, got %s", got.Status)
	}

	got, err = svc.CancelExpiredOrder(paid.ID)
	if err != nil {
		t.Fatalf("cancel paid failed: %v", err)
	}
	if got.Status != constants.OrderStatusPaid {
		t.Fatalf("paid order must stay paid, got %s", got.Status)
	}

	if _, err := svc.CancelExpiredOrder(9999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown order want ErrOrderNotFound got %v", err)
	}
}

func TestSweepExpiredOrders(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	createTestOrder(t, db, "SM4001", constants.OrderStatusPending, &past)
	createTestOrder(t, db, "SM4002", constants.OrderStatusPending, &past)
	createTestOrder(t, db, "SM4003", constants.OrderStatusPending, &future)
	createTestOrder(t, db, "SM4004", constants.OrderStatusPaid, &past)

	swept, err := svc.SweepExpiredOrders(time.Now())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if swept != 2 {
		t.Fatalf("swept want 2 got %d", swept)
	}

	var pending int64
	if err := db.Model(&models.Order{}).Where("status = ?", constants.OrderStatusPending).Count(&pending).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if pending != 1 {
		t.Fatalf("pending want 1 got %d", pending)
	}
}

func TestCreateCheckoutRequiresConfiguredProvider(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	if _, err := svc.CreateCheckout(nil, 1); !errors.Is(err, ErrCheckoutNotConfigured) {
		t.Fatalf("want ErrCheckoutNotConfigured got %v", err)
	}
}

func TestCreateSubscriptionRequiresConfiguredProvider(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	if _, err := svc.CreateSubscription(nil, "sub@smiley.example", "price_123"); !errors.Is(err, ErrCheckoutNotConfigured) {
		t.Fatalf("want ErrCheckoutNotConfigured got %v", err)
	}
}

func TestCreateSubscriptionRequiresPriceID(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	svc.cfg.Checkout.SecretKey = "sk_test"

	// no explicit price id and nothing configured
	if _, err := svc.CreateSubscription(nil, "sub@smiley.example", ""); !errors.Is(err, ErrSubscriptionNotConfigured) {
		t.Fatalf("want ErrSubscriptionNotConfigured got %v", err)
	}
	if _, err := svc.CreateSubscription(nil, "not-an-email", "price_123"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}
