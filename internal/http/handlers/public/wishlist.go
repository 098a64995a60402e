package public

import (
	"github.com/smiley-shop/smiley/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetWishlist returns the saved products
func (h *Handler) GetWishlist(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(profileID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the wishlist", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

type toggleWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// ToggleWishlist flips wishlist membership and reports the new state
func (h *Handler) ToggleWishlist(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	var req toggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	saved, err := h.WishlistService.Toggle(profileID, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "could not update the wishlist")
		return
	}
	response.Success(c, gin.H{"product_id": req.ProductID, "saved": saved})
}
