package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/medisync/docs"
	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/http/handlers"
	mw "github.com/rogerio-castellano/medisync/internal/http/middleware"
	rl "github.com/rogerio-castellano/medisync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/medisync/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// Options wires the router's cross-cutting pieces.
type Options struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Sessions     *auth.SessionManager
	LoginLimiter *rl.Limiter
}

func NewRouter(s *handlers.Server, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(mw.RequestID(opts.Logger))
	r.Use(mw.Logging)
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics(opts.Metrics))

	r.Get("/healthz", s.HealthzHandler)
	r.Get("/readyz", s.ReadyzHandler)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/", s.IndexHandler)
	r.Get("/login", s.LoginPageHandler)
	r.Get("/logout", s.LogoutHandler)
	r.Group(func(r chi.Router) {
		if opts.LoginLimiter != nil {
			r.Use(opts.LoginLimiter.Middleware)
		}
		r.Post("/login", s.LoginHandler)
		r.Post("/auth", s.LoginHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession(opts.Sessions))

		r.Get("/dashboard", s.DashboardHandler)
		r.Get("/products", s.ProductsHandler)
		r.Post("/add-product", s.AddProductHandler)
		r.Get("/purchases", s.PurchasesHandler)
		r.Post("/add-purchase", s.AddPurchaseHandler)
		r.Get("/orders", s.OrdersHandler)
		r.Post("/add-order", s.AddOrderHandler)
		r.Post("/transaction/add", s.AddTransactionHandler)
		r.Get("/notifications", s.NotificationsHandler)
		r.Get("/notification", s.NotificationsHandler)
	})

	return r
}
