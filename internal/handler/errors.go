package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

type errorMapping struct {
	status  int
	message string
}

var knownErrors = map[error]errorMapping{
	utils.ErrUnauthorized:         {http.StatusUnauthorized, "Sign in required"},
	storeapi.ErrNotAuthenticated:  {http.StatusUnauthorized, "Sign in required"},
	utils.ErrInvalidToken:         {http.StatusUnauthorized, "Invalid or expired token"},
	utils.ErrSourceNotFound:       {http.StatusNotFound, "Catalog not found"},
	utils.ErrProductNotFound:      {http.StatusNotFound, "Product not found"},
	utils.ErrOrderNotFound:        {http.StatusNotFound, "Order not found"},
	utils.ErrInvalidQuantity:      {http.StatusBadRequest, "Quantity must be at least 1"},
	utils.ErrInvalidPaymentMethod: {http.StatusBadRequest, "Payment method must be one of card, upi, netbanking, cod"},
	utils.ErrInvalidVPA:           {http.StatusBadRequest, "A valid UPI ID (name@bank) is required"},
	utils.ErrMissingBankCode:      {http.StatusBadRequest, "Select a bank for net banking"},
	utils.ErrEmptyCart:            {http.StatusBadRequest, "Your cart is empty"},
	utils.ErrInvalidSignature:     {http.StatusBadRequest, "Payment could not be verified"},
}

// respondError maps service and backend errors onto the response envelope.
// Backend messages are passed through so the shopper sees why a mutation was
// refused.
func respondError(c *gin.Context, err error) {
	for target, m := range knownErrors {
		if errors.Is(err, target) {
			utils.Error(c, m.status, target.Error(), m.message)
			return
		}
	}

	if errors.Is(err, context.Canceled) {
		// client went away; nobody reads this
		utils.Error(c, 499, "REQUEST_CANCELLED", "Request cancelled")
		return
	}

	switch status := storeapi.StatusCode(err); {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", storeapi.Message(err))
	case status == http.StatusNotFound:
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", storeapi.Message(err))
	case status >= 400 && status < 500:
		utils.Error(c, http.StatusBadRequest, "REQUEST_REJECTED", storeapi.Message(err))
	case status >= 500:
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Backend error")
		utils.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", storeapi.Message(err))
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Backend unavailable")
		utils.Error(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Storefront backend unavailable")
	}
}

// bindError answers a request body that failed validation.
func bindError(c *gin.Context, err error) {
	utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}
