package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/constants"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/payment/stripe"
	"github.com/smiley-shop/smiley/internal/queue"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderService checkout and order lifecycle.
// An order and its lines are written in one transaction, then handed to the
// hosted checkout provider; the webhook drives the paid transition.
type OrderService struct {
	cfg            *config.Config
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	profileRepo    repository.ProfileRepository
	settingService *SettingService
	queueClient    *queue.Client
}

// NewOrderService creates the order service
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
	settingService *SettingService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:            cfg,
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		profileRepo:    profileRepo,
		settingService: settingService,
		queueClient:    queueClient,
	}
}

// CheckoutResult new checkout handle returned to the storefront
type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	CheckoutURL string        `json:"checkout_url"`
}

// CreateCheckout turns the cart into a pending order and opens a hosted
// checkout session for it.
func (s *OrderService) CreateCheckout(ctx context.Context, profileID uint) (*CheckoutResult, error) {
	providerCfg := s.providerConfig()
	if strings.TrimSpace(providerCfg.SecretKey) == "" {
		return nil, ErrCheckoutNotConfigured
	}

	profile, err := s.profileRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	cartItems, err := s.cartRepo.ListByProfile(profileID)
	if err != nil {
		return nil, err
	}

	currency := s.settingService.GetSiteCurrency()
	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	lineItems := make([]stripe.LineItem, 0, len(cartItems))
	for _, item := range cartItems {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
		lineItems = append(lineItems, stripe.LineItem{
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price.String(),
			Quantity:  item.Quantity,
		})
		total = total.Add(lineTotal)
	}
	if len(orderItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	expireMinutes := s.settingService.GetOrderPaymentExpireMinutes(s.cfg.Order.PaymentExpireMinutes)
	expiresAt := now.Add(time.Duration(expireMinutes) * time.Minute)
	order := &models.Order{
		OrderNo:     generateOrderNo(),
		ProfileID:   profile.ID,
		Email:       profile.Email,
		Status:      constants.OrderStatusPending,
		Currency:    currency,
		TotalAmount: models.NewMoneyFromDecimal(total),
		ExpiresAt:   &expiresAt,
	}
	if err := s.orderRepo.Create(order, orderItems); err != nil {
		return nil, err
	}
	order.Items = orderItems

	session, err := stripe.CreateCheckoutSession(ctx, providerCfg, stripe.CreateSessionInput{
		OrderNo:       order.OrderNo,
		Currency:      currency,
		CustomerEmail: profile.Email,
		Items:         lineItems,
	})
	if err != nil {
		// the order never got a payment slot; release it right away
		_ = s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
			"cancelled_at": time.Now(),
		})
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusPending, map[string]interface{}{
		"checkout_session_id": session.SessionID,
	}); err != nil {
		return nil, err
	}
	order.CheckoutSessionID = session.SessionID

	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{OrderID: order.ID}, time.Until(expiresAt)); err != nil {
		logger.Warnw("order_timeout_cancel_enqueue_failed", "order_id", order.ID, "error", err)
	}

	return &CheckoutResult{Order: order, CheckoutURL: session.URL}, nil
}

// CreateSubscription opens a subscription checkout session for an email.
// The price id falls back to the configured subscription price.
func (s *OrderService) CreateSubscription(ctx context.Context, email, priceID string) (string, error) {
	providerCfg := s.providerConfig()
	if strings.TrimSpace(providerCfg.SecretKey) == "" {
		return "", ErrCheckoutNotConfigured
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", ErrInvalidEmail
	}
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		priceID = strings.TrimSpace(s.cfg.Checkout.SubscriptionPriceID)
	}
	if priceID == "" {
		return "", ErrSubscriptionNotConfigured
	}

	session, err := stripe.CreateSubscriptionSession(ctx, providerCfg, stripe.CreateSubscriptionInput{
		PriceID:       priceID,
		CustomerEmail: normalized,
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// HandleWebhook verifies a provider webhook and applies the transition.
// Replays are harmless: the paid transition only ever moves a pending order.
func (s *OrderService) HandleWebhook(headers map[string]string, body []byte) (*stripe.WebhookResult, error) {
	result, err := stripe.VerifyAndParseWebhook(s.providerConfig(), headers, body, time.Now())
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case "success":
		if err := s.markPaidBySession(result.SessionID); err != nil {
			return nil, err
		}
	case "expired", "failed":
		if err := s.cancelPendingBySession(result.SessionID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *OrderService) markPaidBySession(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	rows, err := s.orderRepo.MarkPaidBySessionID(sessionID, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		return nil
	}

	order, err := s.orderRepo.GetByCheckoutSessionID(sessionID)
	if err != nil || order == nil {
		return err
	}
	if err := s.cartRepo.ClearByProfile(order.ProfileID); err != nil {
		logger.Warnw("cart_clear_after_payment_failed", "order_id", order.ID, "error", err)
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  constants.OrderStatusPaid,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return nil
}

func (s *OrderService) cancelPendingBySession(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	order, err := s.orderRepo.GetByCheckoutSessionID(sessionID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPending {
		return nil
	}
	return s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at": time.Now(),
	})
}

// CreatePortalSession opens the provider billing portal for a customer
func (s *OrderService) CreatePortalSession(ctx context.Context, profileID uint) (string, error) {
	providerCfg := s.providerConfig()
	if strings.TrimSpace(providerCfg.SecretKey) == "" {
		return "", ErrCheckoutNotConfigured
	}
	profile, err := s.profileRepo.GetByID(profileID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrNotFound
	}
	customerID, err := stripe.FindCustomerIDByEmail(ctx, providerCfg, profile.Email)
	if err != nil {
		if errors.Is(err, stripe.ErrCustomerNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return stripe.CreatePortalSession(ctx, providerCfg, customerID)
}

// ListByProfile customer order history
func (s *OrderService) ListByProfile(profileID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByProfile(repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProfileID: profileID,
	})
}

// GetByIDAndProfile one order scoped to its owner
func (s *OrderService) GetByIDAndProfile(id, profileID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndProfile(id, profileID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin back-office order list
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetByID back-office order lookup
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatusAdmin applies a back-office status transition.
// Allowed moves: pending -> cancelled, paid -> fulfilled.
func (s *OrderService) UpdateStatusAdmin(id uint, status string) (*models.Order, error) {
	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	status = strings.ToLower(strings.TrimSpace(status))
	updates := map[string]interface{}{}
	now := time.Now()
	switch {
	case order.Status == constants.OrderStatusPending && status == constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	case order.Status == constants.OrderStatusPaid && status == constants.OrderStatusFulfilled:
	default:
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(id, status, updates); err != nil {
		return nil, err
	}
	if status == constants.OrderStatusFulfilled {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  status,
		}); err != nil {
			logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}
	return s.GetByID(id)
}

// CancelExpiredOrder cancels one pending order past its expiry; used by the
// delayed queue task.
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return order, nil
	}
	if order.ExpiresAt == nil || order.ExpiresAt.After(time.Now()) {
		return order, nil
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at": time.Now(),
	}); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// SweepExpiredOrders cancels every pending order past its expiry; backs up
// the per-order queue tasks when the queue is down.
func (s *OrderService) SweepExpiredOrders(now time.Time) (int64, error) {
	return s.orderRepo.CancelExpired(now)
}

func (s *OrderService) providerConfig() *stripe.Config {
	checkout := s.cfg.Checkout
	timeout := time.Duration(checkout.TimeoutMS) * time.Millisecond
	return &stripe.Config{
		SecretKey:       checkout.SecretKey,
		WebhookSecret:   checkout.WebhookSecret,
		SuccessURL:      checkout.SuccessURL,
		CancelURL:       checkout.CancelURL,
		PortalReturnURL: checkout.PortalReturn,
		APIBaseURL:      checkout.APIBase,
		Timeout:         timeout,
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SM%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
