package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/middleware"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

// WishlistHandler handles wishlist endpoints.
type WishlistHandler struct {
	wishlistService *service.WishlistService
}

// NewWishlistHandler constructs a WishlistHandler.
func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetWishlist handles GET /v1/wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	w, err := h.wishlistService.List(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Wishlist retrieved successfully", w)
}

// AddToWishlist handles POST /v1/wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.wishlistService.Add(c.Request.Context(), middleware.GetSession(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Added to wishlist", w)
}

// RemoveFromWishlist handles DELETE /v1/wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	w, err := h.wishlistService.Remove(c.Request.Context(), middleware.GetSession(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Removed from wishlist", w)
}

// ToggleWishlist handles POST /v1/wishlist/:productId/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	w, inWishlist, err := h.wishlistService.Toggle(c.Request.Context(), middleware.GetSession(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "Removed from wishlist"
	if inWishlist {
		msg = "Added to wishlist"
	}
	utils.Success(c, 200, msg, gin.H{
		"inWishlist": inWishlist,
		"wishlist":   w,
	})
}
