// Package metrics 提供 Prometheus 指标集合与暴露端点
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics 指标集合
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 业务指标
	CartItemsAdded  prometheus.Counter
	CartItemsRemove prometheus.Counter
	WishlistChanges *prometheus.CounterVec
	OrdersPlaced    prometheus.Counter
	OrderAmount     prometheus.Histogram
	LoginsTotal     *prometheus.CounterVec
}

// New 创建并注册指标，使用独立的 Registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CartItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cart_items_added_total",
			Help:        "Cart add operations",
			ConstLabels: constLabels,
		}),
		CartItemsRemove: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cart_items_removed_total",
			Help:        "Cart remove operations",
			ConstLabels: constLabels,
		}),
		WishlistChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "wishlist_changes_total",
			Help:        "Wishlist add/remove operations",
			ConstLabels: constLabels,
		}, []string{"action"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "orders_placed_total",
			Help:        "Orders placed",
			ConstLabels: constLabels,
		}),
		OrderAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "order_amount",
			Help:        "Order total amount",
			ConstLabels: constLabels,
			Buckets:     []float64{50, 100, 250, 499, 1000, 2500, 5000},
		}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "logins_total",
			Help:        "Login attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CartItemsAdded,
		m.CartItemsRemove,
		m.WishlistChanges,
		m.OrdersPlaced,
		m.OrderAmount,
		m.LoginsTotal,
	)
	return m
}

// Handler 返回 Prometheus 抓取端点
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 返回底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordCartAdd 记录加入购物车
func (m *Metrics) RecordCartAdd() {
	if m == nil {
		return
	}
	m.CartItemsAdded.Inc()
}

// RecordCartRemove 记录移出购物车
func (m *Metrics) RecordCartRemove() {
	if m == nil {
		return
	}
	m.CartItemsRemove.Inc()
}

// RecordWishlist 记录心愿单变更，action 为 add 或 remove
func (m *Metrics) RecordWishlist(action string) {
	if m == nil {
		return
	}
	m.WishlistChanges.WithLabelValues(action).Inc()
}

// RecordOrder 记录下单
func (m *Metrics) RecordOrder(amount float64) {
	if m == nil {
		return
	}
	m.OrdersPlaced.Inc()
	m.OrderAmount.Observe(amount)
}

// RecordLogin 记录登录结果，result 为 success 或 failure
func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}
