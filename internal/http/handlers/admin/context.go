package admin

import (
	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"
	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/models"

	"github.com/gin-gonic/gin"
)

func getAdminUser(c *gin.Context) (*models.AdminUser, bool) {
	value, exists := c.Get("admin_user")
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return nil, false
	}
	admin, ok := value.(*models.AdminUser)
	if !ok || admin == nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return nil, false
	}
	return admin, true
}

func getAdminSession(c *gin.Context) (*models.AdminSession, bool) {
	value, exists := c.Get("admin_session")
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return nil, false
	}
	session, ok := value.(*models.AdminSession)
	if !ok || session == nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return nil, false
	}
	return session, true
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
