package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/middleware"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Cart retrieved successfully", cart)
}

// AddToCart handles POST /v1/cart. Quantity defaults to 1.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart, err := h.cartService.Add(c.Request.Context(), middleware.GetSession(c), req.ProductID, qty)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Added to cart", cart)
}

// UpdateCartItem handles PUT /v1/cart/:productId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := h.cartService.Update(c.Request.Context(), middleware.GetSession(c), c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Cart updated", cart)
}

// RemoveFromCart handles DELETE /v1/cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cart, err := h.cartService.Remove(c.Request.Context(), middleware.GetSession(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Removed from cart", cart)
}

// ClearCart handles DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.cartService.Clear(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Cart cleared", cart)
}
