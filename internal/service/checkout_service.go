package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// vpaPattern matches a UPI virtual payment address such as "name@bank".
var vpaPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{1,255}@[a-zA-Z][a-zA-Z0-9]{1,63}$`)

// CheckoutRequest places an order from the current cart.
type CheckoutRequest struct {
	Address       models.Address       `json:"address" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	UPIVPA        string               `json:"upiVpa"`
	BankCode      string               `json:"bankCode"`
}

// Validate checks the payment details required by the chosen method.
func (r CheckoutRequest) Validate() error {
	switch r.PaymentMethod {
	case models.PaymentCard, models.PaymentCOD:
		return nil
	case models.PaymentUPI:
		if !vpaPattern.MatchString(strings.TrimSpace(r.UPIVPA)) {
			return utils.ErrInvalidVPA
		}
		return nil
	case models.PaymentNetBanking:
		if strings.TrimSpace(r.BankCode) == "" {
			return utils.ErrMissingBankCode
		}
		return nil
	}
	return utils.ErrInvalidPaymentMethod
}

// CheckoutResult is a placed order. Online payment methods come back with a
// payment session the client completes with the payment SDK.
type CheckoutResult struct {
	Order           *models.Order          `json:"order"`
	Payment         *models.PaymentSession `json:"payment,omitempty"`
	RequiresPayment bool                   `json:"requiresPayment"`
	IdempotencyKey  string                 `json:"idempotencyKey"`
}

// VerifyRequest confirms an online payment.
type VerifyRequest struct {
	OrderID          string `json:"orderId" binding:"required"`
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// CheckoutService places orders and confirms their payments.
type CheckoutService struct {
	client    *storeapi.Client
	store     *store.Store
	assembler *catalog.Assembler
	keySecret string
}

// NewCheckoutService constructs a CheckoutService. With an empty keySecret
// payment signatures are left to the backend.
func NewCheckoutService(client *storeapi.Client, st *store.Store, assembler *catalog.Assembler, keySecret string) *CheckoutService {
	return &CheckoutService{client: client, store: st, assembler: assembler, keySecret: keySecret}
}

// Place orders the current cart. idempotencyKey is forwarded to the backend
// so a retried placement creates one order; one is generated when empty.
func (s *CheckoutService) Place(ctx context.Context, sess session.Session, req CheckoutRequest, idempotencyKey string) (*CheckoutResult, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items, err := s.client.GetCart(ctx, auth.Token)
	if err != nil {
		return nil, err
	}
	cart := BuildCart(items, s.assembler)
	if len(cart.Items) == 0 {
		return nil, utils.ErrEmptyCart
	}

	if idempotencyKey == "" {
		if idempotencyKey, err = utils.GenerateIdempotencyKey(); err != nil {
			return nil, err
		}
	}

	order := storeapi.OrderRequest{
		Items:         make([]storeapi.OrderLine, 0, len(cart.Items)),
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Total:         cart.Subtotal.InexactFloat64(),
	}
	for _, line := range cart.Items {
		order.Items = append(order.Items, storeapi.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice.InexactFloat64(),
		})
	}
	switch req.PaymentMethod {
	case models.PaymentUPI:
		order.UPIVPA = strings.TrimSpace(req.UPIVPA)
	case models.PaymentNetBanking:
		order.BankCode = strings.TrimSpace(req.BankCode)
	}

	placed, err := s.client.PlaceOrder(storeapi.WithIdempotencyKey(ctx, idempotencyKey), auth.Token, order)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", auth.UserID).
		Str("order_id", placed.OrderRef()).
		Str("payment_method", string(req.PaymentMethod)).
		Str("total", cart.Subtotal.StringFixed(2)).
		Msg("Order placed")

	result := &CheckoutResult{Order: placed, IdempotencyKey: idempotencyKey}
	if req.PaymentMethod.Online() {
		result.RequiresPayment = true
		result.Payment = placed.Payment
		return result, nil
	}

	s.clearCart(ctx, auth)
	return result, nil
}

// Verify checks the gateway signature of an online payment and confirms it
// with the backend. The cart is cleared once the backend accepts it.
func (s *CheckoutService) Verify(ctx context.Context, sess session.Session, req VerifyRequest) (*models.Order, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if s.keySecret != "" {
		payload := utils.PaymentSignaturePayload(req.GatewayOrderID, req.GatewayPaymentID)
		if !utils.VerifySignature(payload, req.Signature, s.keySecret) {
			log.Warn().Str("user_id", auth.UserID).Str("order_id", req.OrderID).Msg("Payment signature mismatch")
			return nil, utils.ErrInvalidSignature
		}
	}

	order, err := s.client.VerifyPayment(ctx, auth.Token, storeapi.PaymentVerifyRequest{
		OrderID:          req.OrderID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, auth)
	return order, nil
}

// clearCart empties the cart after a completed order. Failures are logged;
// the order already exists.
func (s *CheckoutService) clearCart(ctx context.Context, auth session.Authenticated) {
	if err := s.client.ClearCart(ctx, auth.Token); err != nil {
		log.Warn().Err(err).Str("user_id", auth.UserID).Msg("Failed to clear cart after order")
		return
	}
	items, err := s.client.GetCart(ctx, auth.Token)
	if err != nil || ctx.Err() != nil {
		return
	}
	s.store.ReplaceCart(auth.UserID, CartQuantities(items))
}
