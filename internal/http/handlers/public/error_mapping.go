package public

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/payment/stripe"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps one business error to a response code and message.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var signupErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "email already registered"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrVerifyCodeTooFrequent, code: response.CodeTooManyRequests, msg: "verification code sent recently, try again later"},
}

var verifySignupErrorRules = []mappedHandlerError{
	{target: service.ErrPendingSignupInvalid, code: response.CodeBadRequest, msg: "signup session invalid"},
	{target: service.ErrPendingSignupExpired, code: response.CodeBadRequest, msg: "signup session expired, sign up again"},
	{target: service.ErrVerifyCodeInvalid, code: response.CodeBadRequest, msg: "verification code incorrect"},
	{target: service.ErrVerifyCodeExpired, code: response.CodeBadRequest, msg: "verification code expired"},
	{target: service.ErrVerifyCodeAttemptsExceeded, code: response.CodeBadRequest, msg: "too many attempts, request a new code"},
}

var verifyCodeErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrInvalidVerifyPurpose, code: response.CodeBadRequest, msg: "invalid verification purpose"},
	{target: service.ErrVerifyCodeTooFrequent, code: response.CodeTooManyRequests, msg: "verification code sent recently, try again later"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, msg: "email delivery unavailable"},
}

var resetPasswordErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrNotFound, code: response.CodeBadRequest, msg: "verification code incorrect"},
	{target: service.ErrVerifyCodeInvalid, code: response.CodeBadRequest, msg: "verification code incorrect"},
	{target: service.ErrVerifyCodeExpired, code: response.CodeBadRequest, msg: "verification code expired"},
	{target: service.ErrVerifyCodeAttemptsExceeded, code: response.CodeBadRequest, msg: "too many attempts, request a new code"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "invalid quantity"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrCheckoutNotConfigured, code: response.CodeInternal, msg: "checkout unavailable"},
	{target: stripe.ErrConfigInvalid, code: response.CodeInternal, msg: "checkout unavailable"},
	{target: stripe.ErrRequestFailed, code: response.CodeInternal, msg: "checkout provider unreachable"},
	{target: stripe.ErrResponseInvalid, code: response.CodeInternal, msg: "checkout provider error"},
}

var subscriptionErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrCheckoutNotConfigured, code: response.CodeInternal, msg: "checkout unavailable"},
	{target: service.ErrSubscriptionNotConfigured, code: response.CodeInternal, msg: "subscriptions unavailable"},
	{target: stripe.ErrConfigInvalid, code: response.CodeInternal, msg: "checkout unavailable"},
	{target: stripe.ErrRequestFailed, code: response.CodeInternal, msg: "checkout provider unreachable"},
	{target: stripe.ErrResponseInvalid, code: response.CodeInternal, msg: "checkout provider error"},
}

var billingPortalErrorRules = []mappedHandlerError{
	{target: service.ErrCheckoutNotConfigured, code: response.CodeInternal, msg: "billing portal unavailable"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "no billing account found"},
	{target: stripe.ErrRequestFailed, code: response.CodeInternal, msg: "checkout provider unreachable"},
	{target: stripe.ErrResponseInvalid, code: response.CodeInternal, msg: "checkout provider error"},
}
