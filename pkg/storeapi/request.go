package storeapi

import "github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"

// WishlistRequest adds a product to the wishlist.
type WishlistRequest struct {
	ProductID string `json:"product_id"`
}

// CartRequest adds a product to the cart.
type CartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartUpdateRequest changes the quantity of a cart line.
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// OrderLine is a line of an order placement.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest places an order.
type OrderRequest struct {
	Items         []OrderLine          `json:"items"`
	Address       models.Address       `json:"address"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Total         float64              `json:"total"`
	UPIVPA        string               `json:"upi_vpa,omitempty"`
	BankCode      string               `json:"bank_code,omitempty"`
}

// PaymentVerifyRequest confirms an online payment collected by the SDK.
type PaymentVerifyRequest struct {
	OrderID          string `json:"order_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}
