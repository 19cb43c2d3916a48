package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/medisync/internal/http/handlers"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler(t *testing.T) {
	env := newTestEnv(t)
	env.db.AddProduct(models.Product{Name: "Paracetamol", Type: models.ProductTypeMedicine, StockQuantity: 40, StockStatus: models.StockStatusInStock})
	exp := testNow.AddDate(0, 0, 10)
	env.db.AddPurchase(models.Purchase{ProductID: 1, PurchaseQuantity: 40, RemainingQuantity: 40, ExpirationDate: &exp, Status: models.PurchaseStatusNearExpiry, PurchaseDate: testNow})
	session := env.sessionCookie(t)

	w := env.get("/dashboard", session)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Total stock<strong>40</strong>")
	assert.Contains(t, body, exp.Format("2006-01-02"))
	assert.NotContains(t, body, "Error loading dashboard")
}

func TestDashboardHandler_RendersZerosOnError(t *testing.T) {
	env := newTestEnv(t, withDashboard(failingDashboard{}))
	session := env.sessionCookie(t)

	w := env.get("/dashboard", session)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Error loading dashboard")
	assert.Contains(t, body, "Total stock<strong>0</strong>")
	assert.Contains(t, body, "Nothing is close to expiry.")
}

func TestNotificationsHandler(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 3; i++ {
		env.db.AddNotification(models.Notification{
			Message:   fmt.Sprintf("notice %d", i),
			Type:      models.NotificationStock,
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		})
	}
	session := env.sessionCookie(t)

	for _, path := range []string{"/notifications", "/notification"} {
		t.Run(path, func(t *testing.T) {
			w := env.get(path, session)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "notice 3")
			assert.Contains(t, w.Body.String(), "notice 1")
		})
	}

	w := env.get("/notifications?limit=1", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notice 3")
	assert.NotContains(t, w.Body.String(), "notice 1")
}

func TestNotificationsHandler_Empty(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/notifications", env.sessionCookie(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No notifications.")
}

func TestHealthzHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/healthz")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(_ context.Context) error { return p.err }

func TestReadyzHandler(t *testing.T) {
	tests := []struct {
		name       string
		pinger     handlers.Pinger
		redis      handlers.Pinger
		wantStatus int
		wantBody   string
	}{
		{name: "database up", pinger: stubPinger{}, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "database down", pinger: stubPinger{err: errors.New("dial tcp: connection refused")}, wantStatus: http.StatusServiceUnavailable, wantBody: "unavailable"},
		{name: "redis up", pinger: stubPinger{}, redis: stubPinger{}, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "redis down", pinger: stubPinger{}, redis: stubPinger{err: errors.New("redis: connection pool timeout")}, wantStatus: http.StatusServiceUnavailable, wantBody: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.deps.DB = tt.pinger
			env.deps.Redis = tt.redis
			s := handlers.NewServer(env.deps)

			w := httptest.NewRecorder()
			s.ReadyzHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Status)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.get("/healthz")

	w := env.get("/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}
