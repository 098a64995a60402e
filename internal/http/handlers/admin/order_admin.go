package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/repository"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders back-office order list with filters
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	profileID, _ := strconv.ParseUint(c.Query("profile_id"), 10, 64)
	filter := repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProfileID: uint(profileID),
		Status:    c.Query("status"),
		OrderNo:   c.Query("order_no"),
		Email:     c.Query("email"),
	}
	if from := parseDateQuery(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseDateQuery(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load orders", err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder back-office order detail
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetByID(id)
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

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus back-office status transition
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	order, err := h.OrderService.UpdateStatusAdmin(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "could not update the order", err)
		}
		return
	}
	response.Success(c, order)
}

func parseDateQuery(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
