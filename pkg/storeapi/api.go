package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// ListProducts fetches a catalog listing. The response envelope is probed
// with catalog.ExtractProducts; an unrecognised body is an empty catalog.
func (c *Client) ListProducts(ctx context.Context, path string, query url.Values) ([]models.Product, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return nil, err
	}
	return catalog.ExtractProducts(raw), nil
}

// GetProduct fetches one product by its resolved identifier.
func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, "", nil)
	if err != nil {
		return nil, err
	}
	p, ok := catalog.DecodeObject[models.Product](raw)
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "product not found"}
	}
	return &p, nil
}

// GetWishlist returns the shopper's wishlist entries.
func (c *Client) GetWishlist(ctx context.Context, token string) ([]models.WishlistItem, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodGet, "/wishlist", nil, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeLines[models.WishlistItem](raw), nil
}

// AddToWishlist adds a product to the shopper's wishlist.
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/wishlist", nil, token, WishlistRequest{ProductID: productID})
	return err
}

// RemoveFromWishlist removes a product from the shopper's wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	_, err := c.doRequest(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil, token, nil)
	return err
}

// GetCart returns the shopper's cart lines.
func (c *Client) GetCart(ctx context.Context, token string) ([]models.CartItem, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodGet, "/cart", nil, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeLines[models.CartItem](raw), nil
}

// AddToCart adds quantity units of a product to the cart.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be >= 1, got %d", quantity)
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/cart", nil, token, CartRequest{ProductID: productID, Quantity: quantity})
	return err
}

// UpdateCartItem sets the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be >= 1, got %d", quantity)
	}
	_, err := c.doRequest(ctx, http.MethodPut, "/cart/"+url.PathEscape(productID), nil, token, CartUpdateRequest{Quantity: quantity})
	return err
}

// RemoveFromCart deletes a cart line.
func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	_, err := c.doRequest(ctx, http.MethodDelete, "/cart/"+url.PathEscape(productID), nil, token, nil)
	return err
}

// ClearCart deletes every cart line.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	_, err := c.doRequest(ctx, http.MethodDelete, "/cart", nil, token, nil)
	return err
}

// PlaceOrder creates an order. Attach an idempotency key to ctx with
// WithIdempotencyKey so a retried placement is not charged twice.
func (c *Client) PlaceOrder(ctx context.Context, token string, req OrderRequest) (*models.Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodPost, "/orders", nil, token, req)
	if err != nil {
		return nil, err
	}
	return decodeOrder(raw)
}

// ListOrders returns the shopper's orders.
func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodGet, "/orders", nil, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeLines[models.Order](raw), nil
}

// GetOrder returns one order with its tracking timeline.
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(raw)
}

// VerifyPayment confirms an online payment with the backend.
func (c *Client) VerifyPayment(ctx context.Context, token string, req PaymentVerifyRequest) (*models.Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodPost, "/payments/verify", nil, token, req)
	if err != nil {
		return nil, err
	}
	return decodeOrder(raw)
}

// GetProfile returns the shopper's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodGet, "/users/profile", nil, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw)
}

// UpdateProfile replaces the shopper's profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, p models.Profile) (*models.Profile, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	raw, err := c.doRequest(ctx, http.MethodPut, "/users/profile", nil, token, p)
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw)
}

// decodeLines handles the list envelopes plus the cart-style {items: [...]}
// and {data: {items: [...]}} shapes.
func decodeLines[T any](raw []byte) []T {
	if items := catalog.DecodeList[T](raw); len(items) > 0 {
		return items
	}
	var wrapped struct {
		Items json.RawMessage `json:"items"`
		Data  struct {
			Items json.RawMessage `json:"items"`
		} `json:"data"`
		Cart struct {
			Items json.RawMessage `json:"items"`
		} `json:"cart"`
	}
	if json.Unmarshal(raw, &wrapped) != nil {
		return []T{}
	}
	for _, candidate := range []json.RawMessage{wrapped.Items, wrapped.Data.Items, wrapped.Cart.Items} {
		if items := catalog.DecodeList[T](candidate); len(items) > 0 {
			return items
		}
	}
	return []T{}
}

var errEmptyBody = errors.New("empty response body")

func decodeOrder(raw []byte) (*models.Order, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errEmptyBody
	}
	var envelope struct {
		Order json.RawMessage `json:"order"`
	}
	if json.Unmarshal(raw, &envelope) == nil && len(envelope.Order) > 0 {
		raw = envelope.Order
	}
	o, ok := catalog.DecodeObject[models.Order](raw)
	if !ok {
		return nil, fmt.Errorf("failed to decode order")
	}
	return &o, nil
}

func decodeProfile(raw []byte) (*models.Profile, error) {
	var envelope struct {
		User json.RawMessage `json:"user"`
	}
	if json.Unmarshal(raw, &envelope) == nil && len(envelope.User) > 0 {
		raw = envelope.User
	}
	p, ok := catalog.DecodeObject[models.Profile](raw)
	if !ok {
		return nil, fmt.Errorf("failed to decode profile")
	}
	return &p, nil
}
