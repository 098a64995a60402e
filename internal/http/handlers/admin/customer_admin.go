package admin

import (
	"strconv"

	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCustomers customer accounts for the back office
func (h *Handler) ListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProfileListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
	}
	profiles, total, err := h.ProfileRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load customers", err)
		return
	}
	items := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		items = append(items, buildCustomerPayload(&profiles[i]))
	}
	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}

// GetCustomer one customer account
func (h *Handler) GetCustomer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid customer id", nil)
		return
	}
	profile, err := h.ProfileRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the customer", err)
		return
	}
	if profile == nil {
		response.NotFound(c, "customer not found")
		return
	}
	response.Success(c, buildCustomerPayload(profile))
}

func buildCustomerPayload(profile *models.Profile) gin.H {
	return gin.H{
		"id":                 profile.ID,
		"email":              profile.Email,
		"name":               profile.Name,
		"email_confirmed_at": profile.EmailConfirmedAt,
		"last_sign_in_at":    profile.LastSignInAt,
		"created_at":         profile.CreatedAt,
	}
}
