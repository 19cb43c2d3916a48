package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stock movement kinds used as the "kind" label.
const (
	KindPurchase    = "purchase"
	KindOrder       = "order"
	KindTransaction = "transaction"
)

// Metrics owns a private registry so every server (and every test) starts from zero.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPStatusCategories *prometheus.CounterVec

	StockMovementsTotal *prometheus.CounterVec
	StockMovementUnits  *prometheus.CounterVec
	LoginAttemptsTotal  *prometheus.CounterVec
	ExpiryFlaggedTotal  prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPStatusCategories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "HTTP responses by status class (2xx, 3xx, 4xx, 5xx)",
			},
			[]string{"category"},
		),
		StockMovementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medisync_stock_movements_total",
				Help: "Recorded stock movements",
			},
			[]string{"kind"},
		),
		StockMovementUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medisync_stock_movement_units_total",
				Help: "Units moved by recorded stock movements",
			},
			[]string{"kind"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medisync_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		ExpiryFlaggedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "medisync_expiry_flagged_total",
				Help: "Purchase batches flagged near expiry or expired",
			},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPStatusCategories,
		m.StockMovementsTotal,
		m.StockMovementUnits,
		m.LoginAttemptsTotal,
		m.ExpiryFlaggedTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
	m.HTTPStatusCategories.WithLabelValues(StatusCategory(status)).Inc()
}

// RecordStockMovement counts one movement of the given kind and its units.
func (m *Metrics) RecordStockMovement(kind string, units int) {
	m.StockMovementsTotal.WithLabelValues(kind).Inc()
	m.StockMovementUnits.WithLabelValues(kind).Add(float64(units))
}

func (m *Metrics) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// StatusCategory maps 404 to "4xx" and so on.
func StatusCategory(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
