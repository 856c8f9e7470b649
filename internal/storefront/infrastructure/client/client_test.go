package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/config"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(config.APIConfig{BaseURL: srv.URL + "/api", Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestProductsDecodesAndPassesFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("category"))
		assert.Equal(t, "bunny", r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, []map[string]any{{
			"ProductID": 2, "Name": "Pastel Bunny Plush", "Description": "Soft",
			"Price": 349.0, "Stock": 100, "CategoryID": 2, "img_url": "b.jpg", "CategoryName": "Plush Toys",
		}})
	})
	c := newTestClient(t, mux)

	products, err := c.Products(context.Background(), "2", "  Bunny ")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Product{
		ID: "2", Title: "Pastel Bunny Plush", CategoryID: "2", CategoryName: "Plush Toys",
		Price: 349, ImageURL: "b.jpg", Description: "Soft", Stock: 100,
	}, products[0])
}

func TestProductsRejectsFractionalPrice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"ProductID": 1, "Name": "Pen", "Price": 79.5}})
	})
	c := newTestClient(t, mux)

	_, err := c.Products(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/cart/item/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Cart item not found"})
	})
	c := newTestClient(t, mux)

	err := c.RemoveCartItem(context.Background(), "9")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Cart item not found", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestCartSendsBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization header is required"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{
			"CartItemID": 11, "ProductID": 1, "Quantity": 2, "Name": "Kawaii Cat Pen", "Price": 79, "img_url": "p.jpg",
		}})
	})
	c := newTestClient(t, mux)

	_, err := c.Cart(context.Background())
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	c.SetToken("tok")
	entries, err := c.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "11", entries[0].EntryID)
	assert.Equal(t, int64(79), entries[0].UnitPrice)
	assert.Equal(t, 2, entries[0].Quantity)
}

func TestAddToCartBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		var body addToCartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, addToCartRequest{ProductID: 3, Quantity: 1}, body)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Item added to cart"})
	})
	c := newTestClient(t, mux)

	require.NoError(t, c.AddToCart(context.Background(), "3", 1))
	assert.ErrorIs(t, c.AddToCart(context.Background(), "p3", 1), domain.ErrValidation)
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		called = true
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "jwt"})
	})
	c := newTestClient(t, mux)

	_, err := c.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)

	token, err := c.Login(context.Background(), "a@b.co", "x")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
	assert.True(t, called)
}

func TestPlaceOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"message": "Order placed successfully", "OrderID": 42})
	})
	c := newTestClient(t, mux)

	conf, err := c.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", conf.OrderID)
	assert.Equal(t, "Order placed successfully", conf.Message)
}
