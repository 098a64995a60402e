package public

import (
	"strconv"

	"github.com/smiley-shop/smiley/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart returns the cart with line details and subtotal
func (h *Handler) GetCart(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(profileID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the cart", err)
		return
	}
	response.Success(c, cart)
}

// GetCartLastAdded returns the short-lived last-added slot, if still live
func (h *Handler) GetCartLastAdded(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	slot, hit, err := h.CartService.LastAdded(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the cart", err)
		return
	}
	if !hit {
		response.Success(c, gin.H{"last_added": nil})
		return
	}
	response.Success(c, gin.H{"last_added": slot})
}

type addCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// AddCartItem adds a product to the cart, merging with an existing line
func (h *Handler) AddCartItem(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := h.CartService.AddItem(c.Request.Context(), profileID, req.ProductID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "could not update the cart")
		return
	}
	cart, err := h.CartService.GetCart(profileID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the cart", err)
		return
	}
	response.Success(c, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a line quantity; zero removes the line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", nil)
		return
	}
	if err := h.CartService.UpdateQuantity(profileID, productID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "could not update the cart")
		return
	}
	cart, err := h.CartService.GetCart(profileID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the cart", err)
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem removes one line
func (h *Handler) RemoveCartItem(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.CartService.RemoveItem(profileID, productID); err != nil {
		respondError(c, response.CodeInternal, "could not update the cart", err)
		return
	}
	cart, err := h.CartService.GetCart(profileID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not load the cart", err)
		return
	}
	response.Success(c, cart)
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	profileID, ok := getProfileID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(profileID); err != nil {
		respondError(c, response.CodeInternal, "could not update the cart", err)
		return
	}
	response.SuccessWithMsg(c, "cart cleared", nil)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(value), nil
}
