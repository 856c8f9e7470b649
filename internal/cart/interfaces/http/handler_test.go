package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/middleware"
)

// singleCartRepo 只保存一个用户的购物车
type singleCartRepo struct {
	cart  *domain.Cart
	items []*domain.CartItem
}

func (r *singleCartRepo) GetByUserID(_ context.Context, userID uint) (*domain.Cart, error) {
	if r.cart == nil || r.cart.UserID != userID {
		return nil, domain.ErrCartNotFound
	}
	c := &domain.Cart{ID: r.cart.ID, UserID: userID}
	for _, it := range r.items {
		cp := *it
		c.Items = append(c.Items, &cp)
	}
	return c, nil
}

func (r *singleCartRepo) Create(_ context.Context, c *domain.Cart) error {
	c.ID = 1
	r.cart = c
	return nil
}

func (r *singleCartRepo) AddItem(_ context.Context, item *domain.CartItem) error {
	for _, it := range r.items {
		if it.ProductID == item.ProductID {
			it.Quantity += item.Quantity
			item.ID, item.Quantity = it.ID, it.Quantity
			return nil
		}
	}
	item.ID = uint(len(r.items) + 10)
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *singleCartRepo) DeleteItem(_ context.Context, item *domain.CartItem) error {
	for i, it := range r.items {
		if it.ID == item.ID {
			r.items = append(r.items[:i], r.items[i+1:]...)
		}
	}
	return nil
}

func (r *singleCartRepo) Lines(context.Context, uint) ([]*domain.CartLine, error) {
	var out []*domain.CartLine
	for _, it := range r.items {
		out = append(out, &domain.CartLine{
			ItemID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			Name: "Kawaii Cat Pen", Price: decimal.RequireFromString("79.00"), ImageURL: "pen.jpg",
		})
	}
	return out, nil
}

type allProducts struct{}

func (allProducts) ProductExists(_ context.Context, id uint) (bool, error) { return id < 100, nil }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func newRouter(repo *singleCartRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, uint(9)) })
	cmd := application.NewCartCommandService(repo, allProducts{}, nopPublisher{}, nil)
	NewHandler(cmd, application.NewCartQueryService(repo)).RegisterRoutes(r.Group("/api"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCartLifecycle(t *testing.T) {
	repo := &singleCartRepo{}
	r := newRouter(repo)

	w := do(r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, http.MethodPost, "/api/cart", `{"productId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Item added to cart"}`, w.Body.String())
	w = do(r, http.MethodPost, "/api/cart", `{"productId":1,"quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"CartItemID":10,"ProductID":1,"Quantity":3,"Name":"Kawaii Cat Pen","Price":79,"img_url":"pen.jpg"}]`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/cart/item/10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Item removed from cart"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/cart/item/10", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Item not found in cart"}`, w.Body.String())
}

func TestAddItemValidation(t *testing.T) {
	r := newRouter(&singleCartRepo{})

	w := do(r, http.MethodPost, "/api/cart", `{"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Product ID is required"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/cart", `{"productId":1,"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/cart", `{"productId":500}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
