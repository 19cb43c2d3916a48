package handlers

import (
	"net/http"
	"strconv"

	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"github.com/rogerio-castellano/medisync/internal/models"
	"go.uber.org/zap"
)

// NotificationsHandler godoc
// @Summary Notification listing
// @Description Newest first. Without a limit the 50 latest are shown; the limit is capped at 200.
// @Tags notifications
// @Produce html
// @Param limit query int false "Maximum rows"
// @Success 200 {string} string "HTML page"
// @Router /notifications [get]
func (s *Server) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Notifications", views.Notifications)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.notifications.List(r.Context(), limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to load notifications", zap.Error(err))
		list = []models.Notification{}
		p.AddError("Error loading notifications")
	}

	p.Data = list
	s.render(w, r, views.Notifications, p)
}
