package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/middleware"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

// CheckoutHandler handles order placement and payment confirmation.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /v1/checkout
//
// Clients retrying a placement should resend the Idempotency-Key returned by
// the first attempt.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.checkoutService.Place(c.Request.Context(), middleware.GetSession(c), req, c.GetHeader("Idempotency-Key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Idempotency-Key", res.IdempotencyKey)

	msg := "Order placed"
	if res.RequiresPayment {
		msg = "Order created, awaiting payment"
	}
	utils.Success(c, 201, msg, res)
}

// VerifyPayment handles POST /v1/checkout/verify
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	var req service.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.checkoutService.Verify(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Payment verified", order)
}
