package admin

import (
	"errors"

	"github.com/smiley-shop/smiley/internal/http/response"
	"github.com/smiley-shop/smiley/internal/models"
	"github.com/smiley-shop/smiley/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSettings every setting row
func (h *Handler) ListSettings(c *gin.Context) {
	settings, err := h.SettingService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "could not load settings", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSetting writes one setting row
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	var value models.JSON
	if err := c.ShouldBindJSON(&value); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	setting, err := h.SettingService.Update(key, value)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeBadRequest, "setting key required", nil)
			return
		}
		respondError(c, response.CodeInternal, "could not save the setting", err)
		return
	}
	response.Success(c, setting)
}
