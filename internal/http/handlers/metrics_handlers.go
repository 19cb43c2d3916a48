package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"github.com/rogerio-castellano/medisync/internal/models"
	"go.uber.org/zap"
)

// DashboardHandler godoc
// @Summary Dashboard
// @Description Stock totals, counts by type, stock in and out over the last seven days, out of stock count and batches near expiry
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "HTML page"
// @Success 302 "Redirect to /login without a session"
// @Router /dashboard [get]
func (s *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Dashboard", views.Dashboard)

	summary, err := s.dashboard.DashboardSummary(r.Context(), s.now())
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to load dashboard", zap.Error(err))
		summary = models.EmptyDashboardSummary()
		p.AddError("Error loading dashboard")
	}
	p.Data = summary
	s.render(w, r, views.Dashboard, p)
}
