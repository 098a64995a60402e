package service

import (
	"strings"
	"time"

	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/shopspring/decimal"
)

// AnalyticsService admin dashboard aggregates
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService creates the analytics service
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// AnalyticsOverview headline numbers for a range
type AnalyticsOverview struct {
	Range        string       `json:"range"`
	RevenueTotal models.Money `json:"revenue_total"`
	OrdersTotal  int64        `json:"orders_total"`
	OrdersPaid   int64        `json:"orders_paid"`
	NewCustomers int64        `json:"new_customers"`
	Subscribers  int64        `json:"subscribers"`
}

// AnalyticsTrendPoint one day on the revenue chart
type AnalyticsTrendPoint struct {
	Day        string       `json:"day"`
	OrdersPaid int64        `json:"orders_paid"`
	Revenue    models.Money `json:"revenue"`
}

// AnalyticsTopProduct best-seller row
type AnalyticsTopProduct struct {
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int64        `json:"quantity"`
	Revenue     models.Money `json:"revenue"`
}

// AnalyticsDashboard full dashboard payload
type AnalyticsDashboard struct {
	Overview    AnalyticsOverview     `json:"overview"`
	Trend       []AnalyticsTrendPoint `json:"trend"`
	TopProducts []AnalyticsTopProduct `json:"top_products"`
}

// ResolveRange maps a range token to a half-open [start, end) window
func ResolveRange(rangeToken string, now time.Time) (time.Time, time.Time, error) {
	days := 0
	switch strings.ToLower(strings.TrimSpace(rangeToken)) {
	case "", constants.AnalyticsRange30d:
		days = 30
	case constants.AnalyticsRange7d:
		days = 7
	case constants.AnalyticsRange90d:
		days = 90
	case constants.AnalyticsRange1y:
		days = 365
	default:
		return time.Time{}, time.Time{}, ErrInvalidAnalyticsRange
	}
	end := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	start := end.AddDate(0, 0, -days)
	return start, end, nil
}

// GetDashboard computes the dashboard for a range token
func (s *AnalyticsService) GetDashboard(rangeToken string) (*AnalyticsDashboard, error) {
	start, end, err := ResolveRange(rangeToken, time.Now())
	if err != nil {
		return nil, err
	}
	normalized := strings.ToLower(strings.TrimSpace(rangeToken))
	if normalized == "" {
		normalized = constants.AnalyticsRange30d
	}

	overviewRow, err := s.analyticsRepo.GetOverview(start, end)
	if err != nil {
		return nil, err
	}
	trendRows, err := s.analyticsRepo.GetRevenueTrend(start, end)
	if err != nil {
		return nil, err
	}
	productRows, err := s.analyticsRepo.GetTopProducts(start, end, 5)
	if err != nil {
		return nil, err
	}

	dashboard := &AnalyticsDashboard{
		Overview: AnalyticsOverview{
			Range:        normalized,
			RevenueTotal: models.NewMoneyFromDecimal(decimal.NewFromFloat(overviewRow.RevenueTotal)),
			OrdersTotal:  overviewRow.OrdersTotal,
			OrdersPaid:   overviewRow.OrdersPaid,
			NewCustomers: overviewRow.NewCustomers,
			Subscribers:  overviewRow.Subscribers,
		},
		Trend:       fillTrendDays(trendRows, start, end),
		TopProducts: make([]AnalyticsTopProduct, 0, len(productRows)),
	}
	for _, row := range productRows {
		dashboard.TopProducts = append(dashboard.TopProducts, AnalyticsTopProduct{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     models.NewMoneyFromDecimal(decimal.NewFromFloat(row.Revenue)),
		})
	}
	return dashboard, nil
}

// fillTrendDays emits one point per day so the chart has no gaps
func fillTrendDays(rows []repository.AnalyticsTrendRow, start, end time.Time) []AnalyticsTrendPoint {
	byDay := make(map[string]repository.AnalyticsTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	points := make([]AnalyticsTrendPoint, 0, int(end.Sub(start).Hours()/24))
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		point := AnalyticsTrendPoint{Day: key, Revenue: models.NewMoneyFromDecimal(decimal.Zero)}
		if row, ok := byDay[key]; ok {
			point.OrdersPaid = row.OrdersPaid
			point.Revenue = models.NewMoneyFromDecimal(decimal.NewFromFloat(row.Revenue))
		}
		points = append(points, point)
	}
	return points
}
