package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rogerio-castellano/medisync/internal/logger"
	"go.uber.org/zap"
)

// HealthzHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		logger.FromContext(r.Context()).Error("failed to write JSON response", zap.Error(err))
	}
}

// ReadyzHandler godoc
// @Summary Readiness probe
// @Description Pings the database and, when configured, Redis
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (s *Server) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, body := http.StatusOK, HealthResponse{Status: "ok"}
	for name, p := range map[string]Pinger{"database": s.db, "redis": s.redis} {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("readiness ping failed", zap.String("dependency", name), zap.Error(err))
			status, body = http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"}
		}
	}
	if err := writeJSON(w, status, body); err != nil {
		logger.FromContext(r.Context()).Error("failed to write JSON response", zap.Error(err))
	}
}
