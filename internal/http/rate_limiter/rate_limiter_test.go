package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LimitsAfterBurst(t *testing.T) {
	l := New(0.001, 3)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	for i := range 3 {
		assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"), "request %d within burst", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"), "other clients keep their own bucket")

	l.CleanupAllVisitors()
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.20:43122"
	assert.Equal(t, "192.168.1.20", ClientIP(req))

	req.RemoteAddr = "192.168.1.20"
	assert.Equal(t, "192.168.1.20", ClientIP(req))
}
