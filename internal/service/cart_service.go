package service

import (
	"context"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// CartService manages the shopper's cart with the same fire-and-confirm
// policy as the wishlist.
type CartService struct {
	client    *storeapi.Client
	store     *store.Store
	assembler *catalog.Assembler
}

// NewCartService constructs a CartService.
func NewCartService(client *storeapi.Client, st *store.Store, assembler *catalog.Assembler) *CartService {
	return &CartService{client: client, store: st, assembler: assembler}
}

// Get fetches the cart with totals.
func (s *CartService) Get(ctx context.Context, sess session.Session) (*models.Cart, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	return s.refresh(ctx, auth)
}

// Add puts quantity units of a product in the cart.
func (s *CartService) Add(ctx context.Context, sess session.Session, productID string, quantity int) (*models.Cart, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	if err := s.client.AddToCart(ctx, auth.Token, productID, quantity); err != nil {
		return nil, err
	}
	return s.refresh(ctx, auth)
}

// Update sets the quantity of a cart line.
func (s *CartService) Update(ctx context.Context, sess session.Session, productID string, quantity int) (*models.Cart, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	if err := s.client.UpdateCartItem(ctx, auth.Token, productID, quantity); err != nil {
		return nil, err
	}
	return s.refresh(ctx, auth)
}

// Remove deletes a cart line.
func (s *CartService) Remove(ctx context.Context, sess session.Session, productID string) (*models.Cart, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if err := s.client.RemoveFromCart(ctx, auth.Token, productID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, auth)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, sess session.Session) (*models.Cart, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if err := s.client.ClearCart(ctx, auth.Token); err != nil {
		return nil, err
	}
	return s.refresh(ctx, auth)
}

func (s *CartService) refresh(ctx context.Context, auth session.Authenticated) (*models.Cart, error) {
	items, err := s.client.GetCart(ctx, auth.Token)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cart := BuildCart(items, s.assembler)
	quantities := make(map[string]int, len(cart.Items))
	for _, line := range cart.Items {
		quantities[line.ProductID] = line.Quantity
	}
	s.store.ReplaceCart(auth.UserID, quantities)
	return &cart, nil
}
