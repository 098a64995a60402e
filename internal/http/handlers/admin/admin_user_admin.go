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

// ListAdminUsers operator accounts
func (h *Handler) ListAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.AdminUserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
	}
	admins, total, err := h.AdminUserService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load operators", err)
		return
	}
	items := make([]gin.H, 0, len(admins))
	for i := range admins {
		items = append(items, buildAdminPayload(h, &admins[i]))
	}
	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}

// GetAdminUser one operator account
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid operator id", nil)
		return
	}
	admin, err := h.AdminUserService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "operator not found")
			return
		}
		respondError(c, response.CodeInternal, "could not load the operator", err)
		return
	}
	response.Success(c, buildAdminPayload(h, admin))
}

// CreateAdminUser creates an operator account
func (h *Handler) CreateAdminUser(c *gin.Context) {
	var input service.AdminUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	admin, err := h.AdminUserService.Create(input)
	if err != nil {
		respondAdminUserWriteError(c, err)
		return
	}
	response.Success(c, buildAdminPayload(h, admin))
}

// UpdateAdminUser saves an operator account
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid operator id", nil)
		return
	}
	var input service.AdminUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	admin, err := h.AdminUserService.Update(id, input)
	if err != nil {
		respondAdminUserWriteError(c, err)
		return
	}
	response.Success(c, buildAdminPayload(h, admin))
}

// DeleteAdminUser removes an operator account
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid operator id", nil)
		return
	}
	if err := h.AdminUserService.Delete(id); err != nil {
		respondAdminUserWriteError(c, err)
		return
	}
	response.SuccessWithMsg(c, "operator deleted", nil)
}

func respondAdminUserWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "operator not found")
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, "invalid email address", nil)
	case errors.Is(err, service.ErrEmailExists):
		respondError(c, response.CodeBadRequest, "email already in use", nil)
	case errors.Is(err, service.ErrInvalidRole):
		respondError(c, response.CodeBadRequest, "invalid role", nil)
	case errors.Is(err, service.ErrWeakPassword):
		respondError(c, response.CodeBadRequest, "password does not meet the policy", nil)
	case errors.Is(err, service.ErrLastSuperAdmin):
		respondError(c, response.CodeBadRequest, "cannot remove the last active super admin", nil)
	default:
		respondError(c, response.CodeInternal, "could not save the operator", err)
	}
}
