package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/smiley-shop/smiley/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func TestOrderCreateWritesItemsInOneTransaction(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := &models.Order{
		OrderNo:     "SM5001",
		ProfileID:   1,
		Status:      "pending",
		Currency:    "USD",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(17.98)),
	}
	items := []models.OrderItem{
		{ProductID: 10, ProductName: "Mint Floss Picks", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(8.99)), Quantity: 2, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(17.98))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 1 {
		t.Fatalf("order items not persisted")
	}
	if loaded.Items[0].OrderID != order.ID {
		t.Fatalf("item not linked to order")
	}

	var count int64
	if err := db.Model(&models.OrderItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("item count want 1 got %d", count)
	}
}

func TestMarkPaidBySessionIDIsIdempotent(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	order := &models.Order{
		OrderNo:           "SM5002",
		ProfileID:         1,
		Status:            "pending",
		Currency:          "USD",
		TotalAmount:       models.NewMoneyFromDecimal(decimal.NewFromFloat(8.99)),
		CheckoutSessionID: "cs_test_idem",
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	paidAt := time.Now()
	rows, err := repo.MarkPaidBySessionID("cs_test_idem", paidAt)
	if err != nil {
		t.Fatalf("first mark paid failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("first mark paid rows want 1 got %d", rows)
	}

	// webhook replay: the order is no longer pending, nothing moves
	rows, err = repo.MarkPaidBySessionID("cs_test_idem", paidAt.Add(time.Minute))
	if err != nil {
		t.Fatalf("replay mark paid failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("replay rows want 0 got %d", rows)
	}

	loaded, err := repo.GetByCheckoutSessionID("cs_test_idem")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Status != "paid" {
		t.Fatalf("status want paid got %s", loaded.Status)
	}
	if loaded.PaidAt == nil {
		t.Fatalf("paid_at not set")
	}
}

func TestMarkPaidBySessionIDUnknownSession(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	rows, err := repo.MarkPaidBySessionID("cs_missing", time.Now())
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows want 0 got %d", rows)
	}
}

func TestCancelExpiredOnlyTouchesExpiredPending(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	orders := []models.Order{
		{OrderNo: "SM6001", ProfileID: 1, Status: "pending", Currency: "USD", ExpiresAt: &past},
		{OrderNo: "SM6002", ProfileID: 1, Status: "pending", Currency: "USD", ExpiresAt: &future},
		{OrderNo: "SM6003", ProfileID: 1, Status: "paid", Currency: "USD", ExpiresAt: &past},
		{OrderNo: "SM6004", ProfileID: 1, Status: "pending", Currency: "USD"},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	rows, err := repo.CancelExpired(time.Now())
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows want 1 got %d", rows)
	}

	var cancelled models.Order
	if err := db.Where("order_no = ?", "SM6001").First(&cancelled).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cancelled.Status != "cancelled" || cancelled.CancelledAt == nil {
		t.Fatalf("expired order not cancelled properly: %s", cancelled.Status)
	}
}
