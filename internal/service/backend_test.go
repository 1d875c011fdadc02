package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/cache"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/config"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// fakeBackend is an in-memory storefront backend.
type fakeBackend struct {
	mu            sync.Mutex
	products      string
	wishlist      []string
	cart          map[string]int
	prices        map[string]float64
	productCalls  atomic.Int32
	failProducts  bool
	failWishlist  bool
	failCart      bool
	lastOrder     map[string]any
	lastIdemKey   string
	verifyCalls   int
	productsDelay time.Duration
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products: `{"data":[
			{"product_id":"p1","name":"Kaju Katli","category":"sweets","price":450,"piece":10},
			{"_id":"p2","name":"Rasgulla","category":"sweets","price":"120.50","piece":0},
			{"id":3,"name":"Banana Chips","category":"snacks","price":80}
		]}`,
		cart:   map[string]int{},
		prices: map[string]float64{"p1": 450, "p2": 120.5, "3": 80},
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	auth := r.Header.Get("Authorization")

	if path == "/products" {
		b.productCalls.Add(1)
		if b.productsDelay > 0 {
			select {
			case <-time.After(b.productsDelay):
			case <-r.Context().Done():
				return
			}
		}
		if b.failProducts {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"message":"catalog down"}`)
			return
		}
		_, _ = io.WriteString(w, b.products)
		return
	}
	if strings.HasPrefix(path, "/products/") {
		if strings.TrimPrefix(path, "/products/") != "p1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"product":{"product_id":"p1","name":"Kaju Katli","price":450,"piece":3}}`)
		return
	}

	if auth != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid token"}`)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch {
	case path == "/wishlist" && r.Method == http.MethodGet:
		if b.failWishlist {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		items := make([]map[string]any, 0, len(b.wishlist))
		for _, id := range b.wishlist {
			items = append(items, map[string]any{"product": map[string]any{"_id": id, "name": "item " + id, "price": b.prices[id]}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": items})
	case path == "/wishlist" && r.Method == http.MethodPost:
		b.wishlist = append(b.wishlist, body["product_id"].(string))
		_, _ = io.WriteString(w, `{"success":true}`)
	case strings.HasPrefix(path, "/wishlist/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(path, "/wishlist/")
		kept := b.wishlist[:0]
		for _, x := range b.wishlist {
			if x != id {
				kept = append(kept, x)
			}
		}
		b.wishlist = kept
		_, _ = io.WriteString(w, `{"success":true}`)
	case path == "/cart" && r.Method == http.MethodGet:
		if b.failCart {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		items := make([]map[string]any, 0, len(b.cart))
		for id, q := range b.cart {
			items = append(items, map[string]any{"product_id": id, "quantity": q, "price": b.prices[id], "name": "item " + id})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	case path == "/cart" && r.Method == http.MethodPost:
		b.cart[body["product_id"].(string)] += int(body["quantity"].(float64))
		_, _ = io.WriteString(w, `{"success":true}`)
	case path == "/cart" && r.Method == http.MethodDelete:
		b.cart = map[string]int{}
		_, _ = io.WriteString(w, `{"success":true}`)
	case strings.HasPrefix(path, "/cart/") && r.Method == http.MethodPut:
		b.cart[strings.TrimPrefix(path, "/cart/")] = int(body["quantity"].(float64))
		_, _ = io.WriteString(w, `{"success":true}`)
	case strings.HasPrefix(path, "/cart/") && r.Method == http.MethodDelete:
		delete(b.cart, strings.TrimPrefix(path, "/cart/"))
		_, _ = io.WriteString(w, `{"success":true}`)
	case path == "/orders" && r.Method == http.MethodPost:
		b.lastOrder = body
		b.lastIdemKey = r.Header.Get("Idempotency-Key")
		resp := map[string]any{"_id": "o1", "status": "placed", "paymentMethod": body["payment_method"], "total": body["total"]}
		if body["payment_method"] != "cod" {
			resp["payment"] = map[string]any{"gatewayOrderId": "gw_1", "amount": body["total"], "currency": "INR"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"order": resp})
	case path == "/orders" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"data":[
			{"id":"o1","status":"delivered","createdAt":"2026-01-01T10:00:00Z"},
			{"id":"o2","status":"placed","createdAt":"2026-02-01T10:00:00Z"}
		]}`)
	case path == "/orders/o1" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"data":{"id":"o1","status":"shipped","timeline":[
			{"status":"shipped","timestamp":"2026-01-02T10:00:00Z"},
			{"status":"placed","timestamp":"2026-01-01T10:00:00Z"}
		]}}`)
	case strings.HasPrefix(path, "/orders/"):
		w.WriteHeader(http.StatusNotFound)
	case path == "/payments/verify":
		b.verifyCalls++
		_, _ = io.WriteString(w, `{"order":{"id":"o1","status":"paid","paymentStatus":"captured"}}`)
	case path == "/users/profile" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"user":{"name":"Asha","email":"asha@example.com"}}`)
	case path == "/users/profile" && r.Method == http.MethodPut:
		_ = json.NewEncoder(w).Encode(map[string]any{"data": body})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type fixture struct {
	backend   *fakeBackend
	client    *storeapi.Client
	store     *store.Store
	cache     *cache.MemoryCatalogCache
	assembler *catalog.Assembler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := newFakeBackend()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	return &fixture{
		backend:   b,
		client:    storeapi.NewClient(srv.URL+"/api", 5*time.Second),
		store:     store.New(),
		cache:     cache.NewMemoryCatalogCache(time.Minute),
		assembler: catalog.NewAssembler("https://cdn.example.com", "https://cdn.example.com/placeholder.png"),
	}
}

func (f *fixture) catalogService() *CatalogService {
	sources := []config.CatalogSource{
		{Name: "sweets", Title: "Sweets", Path: "/products", Category: "sweets", PageSize: 2},
	}
	return NewCatalogService(f.client, f.cache, f.store, f.assembler, sources)
}
