package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsDashboard dashboard aggregates for a date range
func (h *Handler) GetAnalyticsDashboard(c *gin.Context) {
	dashboard, err := h.AnalyticsService.GetDashboard(c.Query("range"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidAnalyticsRange) {
			respondError(c, response.CodeBadRequest, "range must be 7d, 30d or 90d", nil)
			return
		}
		respondError(c, response.CodeInternal, "could not load analytics", err)
		return
	}
	response.Success(c, dashboard)
}

// ListSubscribers newsletter opt-ins
func (h *Handler) ListSubscribers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	subscribers, total, err := h.NewsletterService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load subscribers", err)
		return
	}
	response.SuccessWithPage(c, subscribers, buildPagination(page, pageSize, total))
}
