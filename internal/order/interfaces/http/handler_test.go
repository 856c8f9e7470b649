package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/middleware"
)

type fakeCheckout struct {
	lines   []*domain.CheckoutLine
	loadErr error
	userID  uint
}

func (f *fakeCheckout) LoadCart(_ context.Context, userID uint) (uint, []*domain.CheckoutLine, error) {
	f.userID = userID
	return 1, f.lines, f.loadErr
}
func (f *fakeCheckout) DecrementStock(context.Context, uint, int) error { return nil }
func (f *fakeCheckout) ClearCart(context.Context, uint) error           { return nil }

type fakeOrders struct{}

func (fakeOrders) Save(_ context.Context, o *domain.Order) error {
	o.ID = 42
	return nil
}

type directTx struct{}

func (directTx) WithTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func placeOrder(checkout *fakeCheckout) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, uint(5)) })
	svc := application.NewOrderCommandService(checkout, fakeOrders{}, directTx{}, nopPublisher{}, nil)
	NewOrderHandler(svc).RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	return w
}

func TestPlaceOrderResponses(t *testing.T) {
	pen := &domain.CheckoutLine{ProductID: 1, Name: "Kawaii Cat Pen", Quantity: 2, Price: decimal.NewFromInt(79), Stock: 1}

	tests := []struct {
		name     string
		checkout *fakeCheckout
		status   int
		body     string
	}{
		{"empty cart", &fakeCheckout{}, http.StatusBadRequest, `{"error":"Cart is empty"}`},
		{"low stock", &fakeCheckout{lines: []*domain.CheckoutLine{pen}}, http.StatusBadRequest, `{"error":"Not enough stock for Kawaii Cat Pen"}`},
		{"db failure", &fakeCheckout{loadErr: errors.New("deadlock")}, http.StatusInternalServerError, `{"error":"Order placement failed: deadlock"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := placeOrder(tt.checkout)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestPlaceOrderCreated(t *testing.T) {
	line := &domain.CheckoutLine{ProductID: 1, Name: "Kawaii Cat Pen", Quantity: 2, Price: decimal.NewFromInt(79), Stock: 100}
	checkout := &fakeCheckout{lines: []*domain.CheckoutLine{line}}

	w := placeOrder(checkout)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Order placed successfully!","OrderID":42}`, w.Body.String())
	assert.Equal(t, uint(5), checkout.userID)
}
