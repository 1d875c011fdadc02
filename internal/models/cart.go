package models

import "github.com/shopspring/decimal"

// CartItem is a single cart line as returned by the backend. Some deployments
// embed the product, others only echo the identifier.
type CartItem struct {
	ProductID FlexString `json:"product_id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	ID        FlexString `json:"id,omitempty"`
	Quantity  FlexInt    `json:"quantity"`
	Product   *Product   `json:"product,omitempty"`
	// Flat carts repeat the product fields on the line itself.
	Name     FlexString `json:"name,omitempty"`
	Price    FlexFloat  `json:"price"`
	Image    FlexString `json:"image,omitempty"`
	ImageURL FlexString `json:"imageUrl,omitempty"`
}

// WishlistItem is a wishlist entry. Like cart lines it may carry the full
// product or only the identifier.
type WishlistItem struct {
	ProductID FlexString `json:"product_id,omitempty"`
	MongoID   FlexString `json:"_id,omitempty"`
	ID        FlexString `json:"id,omitempty"`
	Product   *Product   `json:"product,omitempty"`
	Name      FlexString `json:"name,omitempty"`
	Price     FlexFloat  `json:"price"`
	Image     FlexString `json:"image,omitempty"`
	ImageURL  FlexString `json:"imageUrl,omitempty"`
}

// IDAliases returns the line's identifiers, falling back to the embedded
// product when the line itself carries none.
func (c CartItem) IDAliases() (productID, mongoID, id FlexString) {
	if c.ProductID == "" && c.MongoID == "" && c.ID == "" && c.Product != nil {
		return c.Product.IDAliases()
	}
	return c.ProductID, c.MongoID, c.ID
}

// IDAliases returns the entry's identifiers, falling back to the embedded
// product when the entry itself carries none.
func (w WishlistItem) IDAliases() (productID, mongoID, id FlexString) {
	if w.ProductID == "" && w.MongoID == "" && w.ID == "" && w.Product != nil {
		return w.Product.IDAliases()
	}
	return w.ProductID, w.MongoID, w.ID
}

// CartLine is a cart line ready for display.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is the shopper's cart with its totals.
type Cart struct {
	Items         []CartLine      `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}
