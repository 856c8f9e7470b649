package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	m := New("test")
	m.RecordCartAdd()
	m.RecordCartAdd()
	m.RecordWishlist("add")
	m.RecordOrder(158)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CartItemsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WishlistChanges.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlaced))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCartAdd()
		m.RecordHTTPRequest("GET", "/api/products", "200", 0.01)
		m.RecordLogin("failure")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("test")
	m.RecordHTTPRequest("GET", "/api/products", "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "storefront_http_requests_total"))
}
