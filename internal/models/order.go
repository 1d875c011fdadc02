package models

import "time"

// PaymentMethod enumerates the checkout payment options.
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentCOD        PaymentMethod = "cod"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentNetBanking, PaymentCOD:
		return true
	}
	return false
}

// Online reports whether the method is settled through the payment gateway.
func (m PaymentMethod) Online() bool {
	return m.Valid() && m != PaymentCOD
}

// Address is a shipping address.
type Address struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode" binding:"required"`
}

// OrderItem is a line of a placed order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderEvent is one step of an order's tracking timeline.
type OrderEvent struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentSession is what the client hands to the payment SDK to collect an
// online payment for an order.
type PaymentSession struct {
	GatewayOrderID string  `json:"gatewayOrderId"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	KeyID          string  `json:"keyId,omitempty"`
}

// Order is a placed order as the backend reports it.
type Order struct {
	ID            FlexString      `json:"id"`
	MongoID       FlexString      `json:"_id,omitempty"`
	Items         []OrderItem     `json:"items"`
	Total         FlexFloat       `json:"total"`
	Status        string          `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	Address       *Address        `json:"address,omitempty"`
	Timeline      []OrderEvent    `json:"timeline,omitempty"`
	Payment       *PaymentSession `json:"payment,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrderRef returns the order identifier, preferring id over _id.
func (o *Order) OrderRef() string {
	if o.ID != "" {
		return string(o.ID)
	}
	return string(o.MongoID)
}
