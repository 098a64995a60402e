package public

import (
	"errors"
	"io"
	"strconv"

	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/payment/stripe"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCheckout turns the cart into a pending order and returns the hosted
// checkout URL.
func (h *Handler) CreateCheckout(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	result, err := h.OrderService.CreateCheckout(c.Request.Context(), profileID)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}
	response.Success(c, result)
}

type createSubscriptionRequest struct {
	Email   string `json:"email" binding:"required"`
	PriceID string `json:"price_id"`
}

// CreateSubscription opens a subscription checkout session and returns the
// redirect URL. The price id is optional; the configured one is used.
func (h *Handler) CreateSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "email is required", nil)
		return
	}
	url, err := h.OrderService.CreateSubscription(c.Request.Context(), req.Email, req.PriceID)
	if err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeInternal, "subscription checkout failed")
		return
	}
	response.Success(c, gin.H{"url": url})
}

// CreateBillingPortal opens the provider billing portal for the customer
func (h *Handler) CreateBillingPortal(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	url, err := h.OrderService.CreatePortalSession(c.Request.Context(), profileID)
	if err != nil {
		respondWithMappedError(c, err, billingPortalErrorRules, response.CodeInternal, "billing portal unavailable")
		return
	}
	response.Success(c, gin.H{"url": url})
}

// ListOrders the customer's order history
func (h *Handler) ListOrders(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByProfile(profileID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load orders", err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder one order, scoped to its owner
func (h *Handler) GetOrder(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetByIDAndProfile(orderID, profileID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		respondError(c, response.CodeInternal, "could not load the order", err)
		return
	}
	response.Success(c, order)
}

// CheckoutWebhook provider webhook endpoint.
// The raw body is read before any binding: the signature covers the exact
// bytes sent. Replayed events are acknowledged without effect.
func (h *Handler) CheckoutWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		respondError(c, response.CodeBadRequest, "could not read the webhook body", nil)
		return
	}
	headers := map[string]string{
		"Stripe-Signature": c.GetHeader("Stripe-Signature"),
	}
	result, err := h.OrderService.HandleWebhook(headers, body)
	if err != nil {
		if errors.Is(err, stripe.ErrSignatureInvalid) {
			handlershared.RequestLog(c).Warnw("checkout_webhook_signature_invalid", "client_ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "invalid webhook signature", nil)
			return
		}
		respondError(c, response.CodeInternal, "webhook processing failed", err)
		return
	}
	response.Success(c, gin.H{"event_id": result.EventID, "event_type": result.EventType})
}
