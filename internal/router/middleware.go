package router

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/smiley-shop/smiley/internal/cache"
	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/repository"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

const adminSessionContextKey = "admin_session"
const adminUserContextKey = "admin_user"

const adminLoginPath = "/admin/login"
const adminDashboardPath = "/admin/dashboard"

// CORSMiddleware cross-origin middleware
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware request ID middleware
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware structured request log middleware
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// ProfileAuthMiddleware customer JWT middleware.
// Revocation is checked against the cached auth snapshot first, the profile
// row second.
func ProfileAuthMiddleware(secretKey string, profileRepo repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			response.Unauthorized(c, "authentication is not configured")
			c.Abort()
			return
		}
		if profileRepo == nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c, "authorization header missing")
			c.Abort()
			return
		}

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		claims := &service.ProfileJWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid || claims.ProfileID == 0 {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if cached, hit, cacheErr := cache.GetProfileAuthState(c.Request.Context(), claims.ProfileID); cacheErr == nil && hit && cached != nil {
			if !cached.EmailConfirmed {
				response.Unauthorized(c, "email not confirmed")
				c.Abort()
				return
			}
			if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
				response.Unauthorized(c, "token revoked")
				c.Abort()
				return
			}
			c.Set("profile_id", claims.ProfileID)
			c.Set("profile_email", claims.Email)
			c.Next()
			return
		}

		profile, err := profileRepo.GetByID(claims.ProfileID)
		if err != nil || profile == nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		if profile.EmailConfirmedAt == nil {
			response.Unauthorized(c, "email not confirmed")
			c.Abort()
			return
		}
		if claims.TokenVersion != profile.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, profile.TokenInvalidBefore) {
			response.Unauthorized(c, "token revoked")
			c.Abort()
			return
		}
		_ = cache.SetProfileAuthState(c.Request.Context(), cache.BuildProfileAuthState(profile))

		c.Set("profile_id", claims.ProfileID)
		c.Set("profile_email", claims.Email)
		c.Next()
	}
}

// AdminSessionMiddleware resolves the opaque admin session token and slides
// its expiry. Failures carry a redirect hint so the admin UI knows where to
// send the operator.
func AdminSessionMiddleware(adminAuthService *service.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminAuthService == nil {
			logger.Errorw("admin_session_service_unavailable")
			unauthorizedWithRedirect(c, "unauthorized", adminLoginPath)
			return
		}
		token := bearerToken(c)
		if token == "" {
			unauthorizedWithRedirect(c, "authorization header missing", adminLoginPath)
			return
		}

		session, err := adminAuthService.GetSession(token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpired):
				unauthorizedWithRedirect(c, "session expired", adminLoginPath)
			case errors.Is(err, service.ErrAccountDeactivated):
				unauthorizedWithRedirect(c, "account deactivated", adminLoginPath+"?error=account_deactivated")
			case errors.Is(err, service.ErrSessionNotFound):
				unauthorizedWithRedirect(c, "invalid session", adminLoginPath)
			default:
				logger.Errorw("admin_session_lookup_failed", "error", err)
				unauthorizedWithRedirect(c, "unauthorized", adminLoginPath)
			}
			return
		}

		c.Set(adminSessionContextKey, session)
		c.Set(adminUserContextKey, session.AdminUser)
		c.Next()
	}
}

// RequirePermission checks one permission of the signed-in operator.
// Denials carry a dashboard redirect hint rather than a sign-in one: the
// operator is authenticated, just not allowed here.
func RequirePermission(adminAuthService *service.AdminAuthService, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := AdminUserFromContext(c)
		if admin == nil {
			unauthorizedWithRedirect(c, "unauthorized", adminLoginPath)
			return
		}
		if !adminAuthService.HasPermission(admin, permission) {
			logger.Warnw("admin_permission_denied",
				"admin_user_id", admin.ID,
				"role", admin.Role,
				"permission", permission,
				"path", c.Request.URL.Path,
			)
			forbiddenWithRedirect(c, "forbidden", adminDashboardPath)
			return
		}
		c.Next()
	}
}

// AdminUserFromContext the operator attached by AdminSessionMiddleware
func AdminUserFromContext(c *gin.Context) *models.AdminUser {
	value, ok := c.Get(adminUserContextKey)
	if !ok {
		return nil
	}
	admin, ok := value.(*models.AdminUser)
	if !ok {
		return nil
	}
	return admin
}

func unauthorizedWithRedirect(c *gin.Context, msg, redirect string) {
	response.ErrorWithData(c, response.CodeUnauthorized, msg, gin.H{"redirect": redirect})
	c.Abort()
}

func forbiddenWithRedirect(c *gin.Context, msg, redirect string) {
	response.ErrorWithData(c, response.CodeForbidden, msg, gin.H{"redirect": redirect})
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}
