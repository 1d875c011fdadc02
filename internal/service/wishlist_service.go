package service

import (
	"context"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// Wishlist is the shopper's wishlist ready for display.
type Wishlist struct {
	Items []catalog.ProductView `json:"items"`
	Count int                   `json:"count"`
}

// WishlistService manages the shopper's wishlist. Every mutation is confirmed
// by the backend, then the wishlist is fetched again and published to the
// membership store.
type WishlistService struct {
	client    *storeapi.Client
	store     *store.Store
	assembler *catalog.Assembler
}

// NewWishlistService constructs a WishlistService.
func NewWishlistService(client *storeapi.Client, st *store.Store, assembler *catalog.Assembler) *WishlistService {
	return &WishlistService{client: client, store: st, assembler: assembler}
}

// List fetches the wishlist.
func (s *WishlistService) List(ctx context.Context, sess session.Session) (*Wishlist, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	return s.refresh(ctx, auth)
}

// Add puts a product on the wishlist.
func (s *WishlistService) Add(ctx context.Context, sess session.Session, productID string) (*Wishlist, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if err := s.client.AddToWishlist(ctx, auth.Token, productID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, auth)
}

// Remove takes a product off the wishlist.
func (s *WishlistService) Remove(ctx context.Context, sess session.Session, productID string) (*Wishlist, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	if err := s.client.RemoveFromWishlist(ctx, auth.Token, productID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, auth)
}

// Toggle adds the product when it is not wishlisted and removes it otherwise,
// deciding on the backend's current wishlist. It reports whether the product
// ends up wishlisted.
func (s *WishlistService) Toggle(ctx context.Context, sess session.Session, productID string) (*Wishlist, bool, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, false, utils.ErrUnauthorized
	}
	items, err := s.client.GetWishlist(ctx, auth.Token)
	if err != nil {
		return nil, false, err
	}

	present := store.NewMembership(WishlistIDs(items), nil).InWishlist(productID)
	if present {
		err = s.client.RemoveFromWishlist(ctx, auth.Token, productID)
	} else {
		err = s.client.AddToWishlist(ctx, auth.Token, productID)
	}
	if err != nil {
		return nil, present, err
	}

	w, err := s.refresh(ctx, auth)
	if err != nil {
		return nil, !present, err
	}
	return w, !present, nil
}

func (s *WishlistService) refresh(ctx context.Context, auth session.Authenticated) (*Wishlist, error) {
	items, err := s.client.GetWishlist(ctx, auth.Token)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := WishlistIDs(items)
	m := s.store.ReplaceWishlist(auth.UserID, ids)

	w := &Wishlist{Items: make([]catalog.ProductView, 0, len(items))}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		p := wishlistItemProduct(it)
		id := string(p.ProductID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		w.Items = append(w.Items, s.assembler.View(p, m))
	}
	w.Count = len(w.Items)
	return w, nil
}
