package public

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// SignUp starts the signup flow: creates a pending signup and mails a code
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	pending, err := h.UserAuthService.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		respondWithMappedError(c, err, signupErrorRules, response.CodeInternal, "signup failed")
		return
	}
	response.Success(c, gin.H{
		"pending_signup_token": pending.Token,
		"email":                req.Email,
		"expires_at":           pending.ExpiresAt,
	})
}

type verifySignupRequest struct {
	PendingSignupToken string `json:"pending_signup_token" binding:"required"`
	Code               string `json:"code" binding:"required"`
}

// VerifySignup confirms the emailed code and signs the customer in
func (h *Handler) VerifySignup(c *gin.Context) {
	var req verifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	profile, token, expiresAt, err := h.UserAuthService.VerifySignup(req.PendingSignupToken, req.Code)
	if err != nil {
		respondWithMappedError(c, err, verifySignupErrorRules, response.CodeInternal, "verification failed")
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"profile":    buildProfilePayload(profile),
	})
}

type resendSignupCodeRequest struct {
	PendingSignupToken string `json:"pending_signup_token" binding:"required"`
}

// ResendSignupCode re-sends the signup code for a pending signup
func (h *Handler) ResendSignupCode(c *gin.Context) {
	var req resendSignupCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.UserAuthService.ResendSignupCode(req.PendingSignupToken); err != nil {
		rules := append([]mappedHandlerError{}, verifySignupErrorRules...)
		rules = append(rules, verifyCodeErrorRules...)
		respondWithMappedError(c, err, rules, response.CodeInternal, "could not resend the code")
		return
	}
	response.SuccessWithMsg(c, "verification code sent", nil)
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn password sign-in.
// An unconfirmed email restarts the confirmation flow: previous tokens are
// revoked and the response carries a pending signup token instead of a
// session token.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	result, err := h.UserAuthService.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotConfirmed) && result != nil {
			response.ErrorWithData(c, response.CodeForbidden, "email not confirmed", gin.H{
				"pending_signup_token": result.PendingSignupToken,
			})
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "sign-in failed", err)
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"profile":    buildProfilePayload(result.Profile),
	})
}

// SignOut revokes every token of the signed-in customer
func (h *Handler) SignOut(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.SignOut(profileID); err != nil {
		respondError(c, response.CodeInternal, "sign-out failed", err)
		return
	}
	response.SuccessWithMsg(c, "signed out", nil)
}

// GetSession session bootstrap for the storefront shell.
// Bounded by the configured timeout so a slow database cannot hang the
// initial page render.
func (h *Handler) GetSession(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	profile, err := h.UserAuthService.GetSessionProfile(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrBootstrapTimeout) {
			respondError(c, response.CodeInternal, "session lookup timed out", nil)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeUnauthorized, "invalid token", nil)
			return
		}
		respondError(c, response.CodeInternal, "session lookup failed", err)
		return
	}
	response.Success(c, gin.H{"profile": buildProfilePayload(profile)})
}

type sendVerifyCodeRequest struct {
	Email   string `json:"email" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

// SendVerifyCode emails an OTP; publicly only for password reset
func (h *Handler) SendVerifyCode(c *gin.Context) {
	var req sendVerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.UserAuthService.SendVerifyCode(req.Email, req.Purpose); err != nil {
		respondWithMappedError(c, err, verifyCodeErrorRules, response.CodeInternal, "could not send the code")
		return
	}
	response.SuccessWithMsg(c, "verification code sent", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword resets a password with an emailed code
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.UserAuthService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		respondWithMappedError(c, err, resetPasswordErrorRules, response.CodeInternal, "password reset failed")
		return
	}
	response.SuccessWithMsg(c, "password updated, sign in again", nil)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword signed-in password change; revokes existing tokens
func (h *Handler) ChangePassword(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.UserAuthService.ChangePassword(profileID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "current password incorrect", nil)
			return
		}
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, "password does not meet the policy", nil)
			return
		}
		respondError(c, response.CodeInternal, "password change failed", err)
		return
	}
	response.SuccessWithMsg(c, "password updated, sign in again", nil)
}

func buildProfilePayload(profile *models.Profile) gin.H {
	if profile == nil {
		return nil
	}
	return gin.H{
		"id":                 profile.ID,
		"email":              profile.Email,
		"name":               profile.Name,
		"email_confirmed_at": profile.EmailConfirmedAt,
		"last_sign_in_at":    profile.LastSignInAt,
		"created_at":         profile.CreatedAt,
	}
}
