package service

import "errors"

// Sentinel errors shared by the service layer. Handlers match them with
// errors.Is and map them onto response codes.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("password incorrect")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidEmail       = errors.New("email address invalid")
	ErrEmailExists        = errors.New("email already registered")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")

	ErrPendingSignupInvalid = errors.New("pending signup token invalid")
	ErrPendingSignupExpired = errors.New("pending signup token expired")
	ErrBootstrapTimeout     = errors.New("session bootstrap timed out")

	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrInvalidRole        = errors.New("unknown admin role")
	ErrLastSuperAdmin     = errors.New("cannot remove the last super admin")

	ErrInvalidVerifyPurpose       = errors.New("verify purpose not supported")
	ErrVerifyCodeInvalid          = errors.New("verification code invalid")
	ErrVerifyCodeExpired          = errors.New("verification code expired")
	ErrVerifyCodeTooFrequent      = errors.New("verification code requested too frequently")
	ErrVerifyCodeAttemptsExceeded = errors.New("verification code attempts exceeded")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrProductNotAvailable = errors.New("product not available")
	ErrCartEmpty           = errors.New("cart is empty")

	ErrSlugExists    = errors.New("slug already in use")
	ErrInvalidSlug   = errors.New("slug invalid")
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	ErrOrderNotFound             = errors.New("order not found")
	ErrInvalidOrderStatus        = errors.New("order status transition invalid")
	ErrCheckoutNotConfigured     = errors.New("checkout provider not configured")
	ErrSubscriptionNotConfigured = errors.New("subscription price not configured")

	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrInvalidAnalyticsRange = errors.New("analytics range not supported")
)
