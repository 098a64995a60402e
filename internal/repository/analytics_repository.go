package repository

import (
	"time"

	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository aggregate queries for the admin dashboard.
// Read-only statistics, no business rules.
type AnalyticsRepository interface {
	GetOverview(startAt, endAt time.Time) (AnalyticsOverviewRow, error)
	GetRevenueTrend(startAt, endAt time.Time) ([]AnalyticsTrendRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]AnalyticsProductRow, error)
}

// AnalyticsOverviewRow raw overview aggregates
type AnalyticsOverviewRow struct {
	RevenueTotal float64
	OrdersTotal  int64
	OrdersPaid   int64
	NewCustomers int64
	Subscribers  int64
}

// AnalyticsTrendRow per-day revenue aggregates
type AnalyticsTrendRow struct {
	Day        string
	OrdersPaid int64
	Revenue    float64
}

// AnalyticsProductRow product ranking row
type AnalyticsProductRow struct {
	ProductID   uint
	ProductName string
	Quantity    int64
	Revenue     float64
}

// GormAnalyticsRepository GORM implementation
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates the analytics repository
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func paidOrderStatuses() []string {
	return []string{
		constants.OrderStatusPaid,
		constants.OrderStatusFulfilled,
	}
}

// GetOverview overview aggregates for a range
func (r *GormAnalyticsRepository) GetOverview(startAt, endAt time.Time) (AnalyticsOverviewRow, error) {
	result := AnalyticsOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status IN ?", paidOrderStatuses()).Count(&result.OrdersPaid).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Order{}).
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at < ? AND status IN ?", startAt, endAt, paidOrderStatuses()).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.RevenueTotal).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Profile{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewCustomers).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.NewsletterSubscriber{}).
		Where("subscribed_at >= ? AND subscribed_at < ? AND unsubscribed_at IS NULL", startAt, endAt).
		Count(&result.Subscribers).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetRevenueTrend per-day paid revenue for a range
func (r *GormAnalyticsRepository) GetRevenueTrend(startAt, endAt time.Time) ([]AnalyticsTrendRow, error) {
	var rows []AnalyticsTrendRow
	err := r.db.Model(&models.Order{}).
		Select(dateBucketExpr(r.db, "paid_at")+" AS day, COUNT(*) AS orders_paid, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at < ? AND status IN ?", startAt, endAt, paidOrderStatuses()).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts best sellers by paid quantity for a range
func (r *GormAnalyticsRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]AnalyticsProductRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []AnalyticsProductRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, order_items.product_name AS product_name, SUM(order_items.quantity) AS quantity, COALESCE(SUM(order_items.total_price), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.paid_at IS NOT NULL AND orders.paid_at >= ? AND orders.paid_at < ? AND orders.status IN ?", startAt, endAt, paidOrderStatuses()).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
