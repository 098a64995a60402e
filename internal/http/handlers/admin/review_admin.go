package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/repository"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReviews review moderation queue
func (h *Handler) ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	filter := repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		Status:    c.Query("status"),
	}
	reviews, total, err := h.ReviewService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load reviews", err)
		return
	}
	response.SuccessWithPage(c, reviews, buildPagination(page, pageSize, total))
}

// ApproveReview publishes a pending review
func (h *Handler) ApproveReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid review id", nil)
		return
	}
	if err := h.ReviewService.Approve(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "review not found")
			return
		}
		respondError(c, response.CodeInternal, "could not approve the review", err)
		return
	}
	response.SuccessWithMsg(c, "review approved", nil)
}

// DeleteReview removes a review
func (h *Handler) DeleteReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid review id", nil)
		return
	}
	if err := h.ReviewService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "review not found")
			return
		}
		respondError(c, response.CodeInternal, "could not delete the review", err)
		return
	}
	response.SuccessWithMsg(c, "review deleted", nil)
}
