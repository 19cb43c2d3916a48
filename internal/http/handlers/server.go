package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/http/flash"
	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"github.com/rogerio-castellano/medisync/internal/metrics"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the HTTP handlers.
type Deps struct {
	Catalog       repo.CatalogRepository
	Stock         repo.StockRepository
	Dashboard     repo.MetricsRepository
	Notifications repo.NotificationRepository
	Authenticator *auth.Authenticator
	Sessions      *auth.SessionManager
	Views         *views.Renderer
	Metrics       *metrics.Metrics
	DB            Pinger
	// Redis is nil when session revocation is kept in memory.
	Redis Pinger
	Now   func() time.Time
}

type Server struct {
	catalog       repo.CatalogRepository
	stock         repo.StockRepository
	dashboard     repo.MetricsRepository
	notifications repo.NotificationRepository
	authenticator *auth.Authenticator
	sessions      *auth.SessionManager
	views         *views.Renderer
	metrics       *metrics.Metrics
	db            Pinger
	redis         Pinger
	now           func() time.Time
}

func NewServer(d Deps) *Server {
	s := &Server{
		catalog:       d.Catalog,
		stock:         d.Stock,
		dashboard:     d.Dashboard,
		notifications: d.Notifications,
		authenticator: d.Authenticator,
		sessions:      d.Sessions,
		views:         d.Views,
		metrics:       d.Metrics,
		db:            d.DB,
		redis:         d.Redis,
		now:           d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

// page starts the template data for r, consuming queued flash messages.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title, active string) views.Page {
	sess, _ := auth.SessionFromContext(r.Context())
	return views.Page{
		Title:   title,
		Active:  active,
		Session: sess,
		Flashes: flash.Pop(w, r),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, p views.Page) {
	if err := s.views.Render(w, http.StatusOK, name, p); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
