package admin

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

type signInRequest struct {
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

// SignIn operator sign-in; returns the opaque session token
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaAnswer); err != nil {
		if errors.Is(err, service.ErrCaptchaRequired) {
			respondError(c, response.CodeBadRequest, "captcha required", nil)
			return
		}
		respondError(c, response.CodeBadRequest, "captcha incorrect", nil)
		return
	}

	admin, session, err := h.AdminAuthService.SignIn(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrAccountDeactivated):
			respondError(c, response.CodeUnauthorized, "account deactivated", nil)
		default:
			respondError(c, response.CodeInternal, "sign-in failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"admin":      buildAdminPayload(h, admin),
	})
}

// SignOut drops the current session
func (h *Handler) SignOut(c *gin.Context) {
	session, ok := getAdminSession(c)
	if !ok {
		return
	}
	if err := h.AdminAuthService.SignOut(session.Token); err != nil {
		respondError(c, response.CodeInternal, "sign-out failed", err)
		return
	}
	response.SuccessWithMsg(c, "signed out", nil)
}

// GetMe the signed-in operator plus the effective permission set
func (h *Handler) GetMe(c *gin.Context) {
	admin, ok := getAdminUser(c)
	if !ok {
		return
	}
	response.Success(c, buildAdminPayload(h, admin))
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword operator password change; other sessions are revoked
func (h *Handler) ChangePassword(c *gin.Context) {
	admin, ok := getAdminUser(c)
	if !ok {
		return
	}
	session, ok := getAdminSession(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.AdminAuthService.ChangePassword(admin.ID, req.OldPassword, req.NewPassword, session.Token); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "current password incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, "password does not meet the policy", nil)
		default:
			respondError(c, response.CodeInternal, "password change failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "password updated", nil)
}

func buildAdminPayload(h *Handler, admin *models.AdminUser) gin.H {
	if admin == nil {
		return nil
	}
	return gin.H{
		"id":              admin.ID,
		"email":           admin.Email,
		"name":            admin.Name,
		"role":            admin.Role,
		"is_active":       admin.IsActive,
		"permissions":     service.PermissionsForRole(admin.Role),
		"last_sign_in_at": admin.LastSignInAt,
	}
}
