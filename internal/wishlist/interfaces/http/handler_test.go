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
	"github.com/wyfcoding/storefront/internal/wishlist/application"
	"github.com/wyfcoding/storefront/internal/wishlist/domain"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
)

type memRepo struct {
	items []*domain.WishlistItem
}

func (r *memRepo) Add(_ context.Context, item *domain.WishlistItem) (bool, error) {
	for _, it := range r.items {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			return false, nil
		}
	}
	item.ID = uint(len(r.items) + 1)
	r.items = append(r.items, item)
	return true, nil
}

func (r *memRepo) Remove(_ context.Context, userID, productID uint) (bool, error) {
	for i, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Lines(_ context.Context, userID uint) ([]*domain.WishlistLine, error) {
	var out []*domain.WishlistLine
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, &domain.WishlistLine{ProductID: it.ProductID, Name: "Cloud Pillow", Price: decimal.NewFromInt(260), ImageURL: "pillow.jpg"})
		}
	}
	return out, nil
}

type catalog struct{}

func (catalog) ProductExists(_ context.Context, id uint) (bool, error) { return id <= 4, nil }

type countingPublisher struct{ n int }

func (p *countingPublisher) Publish(context.Context, string, string, any) error {
	p.n++
	return nil
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWishlistIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &memRepo{}
	pub := &countingPublisher{}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, uint(3)) })
	NewHandler(application.NewWishlistService(repo, catalog{}, pub, metrics.New("wishlist-test"))).RegisterRoutes(r.Group("/api"))

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/api/wishlist", `{"productId":4}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"Added to wishlist"}`, w.Body.String())
	}
	assert.Len(t, repo.items, 1)
	assert.Equal(t, 1, pub.n)

	w := do(r, http.MethodGet, "/api/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"ProductID":4,"Name":"Cloud Pillow","Price":260,"img_url":"pillow.jpg"}]`, w.Body.String())

	for i := 0; i < 2; i++ {
		w = do(r, http.MethodDelete, "/api/wishlist/4", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Removed from wishlist"}`, w.Body.String())
	}
	assert.Empty(t, repo.items)
	assert.Equal(t, 2, pub.n)

	w = do(r, http.MethodGet, "/api/wishlist", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestWishlistValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(application.NewWishlistService(&memRepo{}, catalog{}, &countingPublisher{}, nil)).RegisterRoutes(r.Group("/api"))

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/wishlist", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/wishlist", `{"productId":40}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/wishlist/abc", "").Code)
}
