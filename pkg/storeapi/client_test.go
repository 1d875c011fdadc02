package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", 5*time.Second)
}

func TestListProducts_QueryAndEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "sweets", r.URL.Query().Get("category"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"products":[{"_id":"a1","name":"Ladoo","price":"120"}]}`)
	})

	products, err := c.ListProducts(context.Background(), "/products", url.Values{"category": {"sweets"}})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "a1", catalog.ResolveProductID(products[0]))
	assert.Equal(t, 120.0, products[0].Price.Or(0))
}

func TestDoRequest_APIErrorMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"out of stock"}`, "out of stock"},
		{`{"error":"token expired"}`, "token expired"},
		{`{"error":{"message":"nested"}}`, "nested"},
		{`oops`, "Bad Request"},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, tc.body)
		})
		_, err := c.ListProducts(context.Background(), "/products", nil)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, tc.want, apiErr.Message)
		assert.Equal(t, tc.want, Message(err))
	}
}

func TestDoRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base, time.Second)
	_, err := c.ListProducts(context.Background(), "/products", nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestDoRequest_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListProducts(ctx, "/products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthenticatedCalls_RequireToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	ctx := context.Background()

	_, err := c.GetWishlist(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = c.GetCart(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, c.AddToCart(ctx, "", "p", 1), ErrNotAuthenticated)
	assert.ErrorIs(t, c.AddToWishlist(ctx, "", "p"), ErrNotAuthenticated)
}

func TestCartMutations(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{r.Method, r.URL.Path, body})
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	ctx := context.Background()

	require.NoError(t, c.AddToCart(ctx, "tok", "p1", 2))
	require.NoError(t, c.UpdateCartItem(ctx, "tok", "p1", 5))
	require.NoError(t, c.RemoveFromCart(ctx, "tok", "p1"))
	assert.Error(t, c.AddToCart(ctx, "tok", "p1", 0))
	assert.Error(t, c.UpdateCartItem(ctx, "tok", "p1", -1))

	require.Len(t, calls, 3)
	assert.Equal(t, call{"POST", "/api/cart", map[string]any{"product_id": "p1", "quantity": 2.0}}, calls[0])
	assert.Equal(t, call{"PUT", "/api/cart/p1", map[string]any{"quantity": 5.0}}, calls[1])
	assert.Equal(t, "DELETE", calls[2].method)
}

func TestGetCart_Shapes(t *testing.T) {
	bodies := []string{
		`{"data":[{"product_id":"p1","quantity":2}]}`,
		`{"items":[{"product":{"_id":"p1"},"quantity":2}]}`,
		`{"cart":{"items":[{"id":"p1","quantity":"2"}]}}`,
		`[{"product_id":"p1","quantity":2}]`,
	}
	for _, body := range bodies {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		lines, err := c.GetCart(context.Background(), "tok")
		require.NoError(t, err, body)
		require.Len(t, lines, 1, body)
		assert.Equal(t, "p1", catalog.ResolveProductID(lines[0]), body)
		assert.Equal(t, 2, lines[0].Quantity.Or(0), body)
	}
}

func TestPlaceOrder_IdempotencyKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "ord_1", r.Header.Get("Idempotency-Key"))
		_, _ = io.WriteString(w, `{"order":{"_id":"o9","status":"placed","total":240,"paymentMethod":"cod"}}`)
	})
	ctx := WithIdempotencyKey(context.Background(), "ord_1")

	o, err := c.PlaceOrder(ctx, "tok", OrderRequest{PaymentMethod: models.PaymentCOD})
	require.NoError(t, err)
	assert.Equal(t, "o9", o.OrderRef())
	assert.Equal(t, 240.0, o.Total.Or(0))
}

func TestGetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"no such product"}`)
	})
	_, err := c.GetProduct(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestGetProfile_UserEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"user":{"name":"Asha","email":"asha@example.com"}}`)
	})
	p, err := c.GetProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
}

func TestImageAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/uploads/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
		case "/uploads/page.jpg":
			w.Header().Set("Content-Type", "text/html")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()
	assert.True(t, c.ImageAvailable(ctx, srv.URL+"/uploads/ok.jpg"))
	assert.False(t, c.ImageAvailable(ctx, srv.URL+"/uploads/page.jpg"))
	assert.False(t, c.ImageAvailable(ctx, srv.URL+"/uploads/missing.jpg"))
	assert.False(t, c.ImageAvailable(ctx, "::not a url"))
}
