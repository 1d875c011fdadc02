package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/cache"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/config"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// ViewStatus is the lifecycle state of a catalog view.
type ViewStatus string

const (
	ViewLoading ViewStatus = "loading"
	ViewError   ViewStatus = "error"
	ViewReady   ViewStatus = "ready"
)

// CatalogView is one rendering of a catalog source: loading until the product
// list arrives, then ready or error. There is no automatic retry.
type CatalogView struct {
	Source    config.CatalogSource `json:"source"`
	Status    ViewStatus           `json:"status"`
	Error     string               `json:"error,omitempty"`
	Retryable bool                 `json:"retryable,omitempty"`
	Result    *catalog.Result      `json:"result,omitempty"`
	Facets    *catalog.Facets      `json:"facets,omitempty"`
	FetchedAt *time.Time           `json:"fetchedAt,omitempty"`
}

func newCatalogView(src config.CatalogSource) *CatalogView {
	return &CatalogView{Source: src, Status: ViewLoading}
}

func (v *CatalogView) ready(r catalog.Result, f catalog.Facets, fetchedAt time.Time) {
	if v.Status != ViewLoading {
		return
	}
	v.Status = ViewReady
	v.Result = &r
	v.Facets = &f
	v.FetchedAt = &fetchedAt
}

func (v *CatalogView) fail(err error) {
	if v.Status != ViewLoading {
		return
	}
	v.Status = ViewError
	v.Error = "Failed to load products"
	if storeapi.StatusCode(err) != 0 {
		v.Error = storeapi.Message(err)
	}
	v.Retryable = true
}

// CatalogService loads catalog sources and runs the view pipeline over them.
type CatalogService struct {
	client    *storeapi.Client
	cache     cache.CatalogCache
	store     *store.Store
	assembler *catalog.Assembler
	sources   []config.CatalogSource
	group     singleflight.Group
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(client *storeapi.Client, c cache.CatalogCache, st *store.Store, assembler *catalog.Assembler, sources []config.CatalogSource) *CatalogService {
	return &CatalogService{
		client:    client,
		cache:     c,
		store:     st,
		assembler: assembler,
		sources:   sources,
	}
}

// Sources returns the configured catalog sources.
func (s *CatalogService) Sources() []config.CatalogSource {
	return s.sources
}

// Source looks up a catalog source by name.
func (s *CatalogService) Source(name string) (config.CatalogSource, error) {
	src, ok := config.FindSource(s.sources, name)
	if !ok {
		return config.CatalogSource{}, utils.ErrSourceNotFound
	}
	return src, nil
}

// Assembler returns the view model assembler.
func (s *CatalogService) Assembler() *catalog.Assembler {
	return s.assembler
}

// View loads a source and renders the requested page. prevFingerprint is the
// state fingerprint the client rendered last; when filter or sort changed
// since, the page resets to 1.
//
// Only an unknown source is returned as an error. A failed product fetch
// yields a view in the error state.
func (s *CatalogService) View(ctx context.Context, sess session.Session, name string, state catalog.ViewState, prevFingerprint string) (*CatalogView, error) {
	src, err := s.Source(name)
	if err != nil {
		return nil, err
	}

	view := newCatalogView(src)
	snap, membership, err := s.load(ctx, sess, src)
	if err != nil {
		log.Warn().Err(err).Str("source", src.Name).Msg("Catalog fetch failed")
		view.fail(err)
		return view, nil
	}

	state = state.Reconcile(prevFingerprint)
	result := s.assembler.Run(snap.Products, state, src.PageSize, membership)
	view.ready(result, catalog.BuildFacets(snap.Products), snap.FetchedAt)
	return view, nil
}

// Retry drops the cached snapshot of a source and loads the view again.
func (s *CatalogService) Retry(ctx context.Context, sess session.Session, name string, state catalog.ViewState) (*CatalogView, error) {
	src, err := s.Source(name)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, src.Name); err != nil {
		log.Warn().Err(err).Str("source", src.Name).Msg("Failed to invalidate catalog snapshot")
	}
	return s.View(ctx, sess, src.Name, state, "")
}

// Product returns one product decorated with the caller's last known
// membership.
func (s *CatalogService) Product(ctx context.Context, sess session.Session, productID string) (*catalog.ProductView, error) {
	p, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	var m catalog.Membership
	if auth, ok := session.Auth(sess); ok {
		if known, ok := s.store.Get(auth.UserID); ok {
			m = known
		}
	}
	v := s.assembler.View(*p, m)
	return &v, nil
}

// Refresh fetches a source from the backend and replaces its cached snapshot.
func (s *CatalogService) Refresh(ctx context.Context, name string) (*cache.Snapshot, error) {
	src, err := s.Source(name)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, src)
}

// load fetches the product snapshot and, for a signed-in caller, the wishlist
// and cart concurrently. Wishlist and cart failures degrade to empty sets.
func (s *CatalogService) load(ctx context.Context, sess session.Session, src config.CatalogSource) (*cache.Snapshot, catalog.Membership, error) {
	var (
		snap     *cache.Snapshot
		wishlist []models.WishlistItem
		cart     []models.CartItem
		wlErr    error
		cartErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.snapshot(gctx, src)
		return err
	})

	auth, signedIn := session.Auth(sess)
	if signedIn {
		g.Go(func() error {
			wishlist, wlErr = s.client.GetWishlist(gctx, auth.Token)
			return nil
		})
		g.Go(func() error {
			cart, cartErr = s.client.GetCart(gctx, auth.Token)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if !signedIn {
		return snap, nil, nil
	}

	var wishlistIDs []string
	if wlErr != nil {
		log.Warn().Err(wlErr).Str("user_id", auth.UserID).Msg("Wishlist fetch failed, rendering without it")
	} else {
		wishlistIDs = WishlistIDs(wishlist)
		s.store.ReplaceWishlist(auth.UserID, wishlistIDs)
	}

	var quantities map[string]int
	if cartErr != nil {
		log.Warn().Err(cartErr).Str("user_id", auth.UserID).Msg("Cart fetch failed, rendering without it")
	} else {
		quantities = CartQuantities(cart)
		s.store.ReplaceCart(auth.UserID, quantities)
	}

	return snap, store.NewMembership(wishlistIDs, quantities), nil
}

// snapshot returns the cached snapshot of src or fetches it.
func (s *CatalogService) snapshot(ctx context.Context, src config.CatalogSource) (*cache.Snapshot, error) {
	snap, err := s.cache.Get(ctx, src.Name)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("source", src.Name).Msg("Catalog cache read failed")
	}

	// Concurrent views of a cold source share one upstream request.
	ch := s.group.DoChan(src.Name, func() (interface{}, error) {
		return s.fetch(ctx, src)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, context.Canceled) && ctx.Err() == nil {
				// the request that led the shared fetch went away
				return s.fetch(ctx, src)
			}
			return nil, res.Err
		}
		return res.Val.(*cache.Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetch downloads src and stores it unless ctx was cancelled meanwhile.
func (s *CatalogService) fetch(ctx context.Context, src config.CatalogSource) (*cache.Snapshot, error) {
	products, err := s.client.ListProducts(ctx, src.Path, sourceQuery(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrCatalogUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := &cache.Snapshot{Source: src.Name, Products: products, FetchedAt: time.Now()}
	if err := s.cache.Set(ctx, snap); err != nil {
		log.Warn().Err(err).Str("source", src.Name).Msg("Failed to cache catalog snapshot")
	}
	return snap, nil
}

func sourceQuery(src config.CatalogSource) url.Values {
	q := url.Values{}
	if src.Brand != "" {
		q.Set("brand", src.Brand)
	}
	if src.Category != "" {
		q.Set("category", src.Category)
	}
	return q
}

// WishlistIDs resolves the product id of every wishlist entry.
func WishlistIDs(items []models.WishlistItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if id := catalog.ResolveProductID(it); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// CartQuantities sums cart line quantities per resolved product id. Lines
// without a quantity count as one unit; lines below one are skipped, as in
// BuildCart.
func CartQuantities(items []models.CartItem) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		id := catalog.ResolveProductID(it)
		if id == "" {
			continue
		}
		qty := it.Quantity.Or(1)
		if qty < 1 {
			continue
		}
		out[id] += qty
	}
	return out
}
