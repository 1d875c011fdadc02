package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/middleware"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

// OrderHandler handles order history and tracking.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrders handles GET /v1/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{"orders": orders})
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved successfully", order)
}
