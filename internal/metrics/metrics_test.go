package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusCategory(t *testing.T) {
	tests := map[int]string{
		101: "1xx",
		200: "2xx",
		303: "3xx",
		404: "4xx",
		429: "4xx",
		500: "5xx",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusCategory(status), "status %d", status)
	}
}

func TestRecordStockMovement(t *testing.T) {
	m := New()

	m.RecordStockMovement(KindPurchase, 10)
	m.RecordStockMovement(KindPurchase, 5)
	m.RecordStockMovement(KindOrder, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StockMovementsTotal.WithLabelValues(KindPurchase)))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.StockMovementUnits.WithLabelValues(KindPurchase)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StockMovementUnits.WithLabelValues(KindOrder)))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/dashboard", http.StatusOK, 0.01)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/dashboard",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `http_status_category_total{category="2xx"} 1`)
}
