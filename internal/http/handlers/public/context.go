package public

import (
	handlershared "github.com/smiley-shop/smiley/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getProfileID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "profile_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
