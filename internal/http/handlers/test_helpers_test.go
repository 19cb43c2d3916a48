package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/config"
	"github.com/rogerio-castellano/medisync/internal/http/handlers"
	rl "github.com/rogerio-castellano/medisync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/medisync/internal/http/router"
	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/metrics"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	router   http.Handler
	db       *repo.InMemoryDB
	sessions *auth.SessionManager
	metrics  *metrics.Metrics
	catalog  *repo.InMemoryCatalogRepository
	deps     handlers.Deps
}

type envOption func(*handlers.Deps, *router.Options)

func withDashboard(d repo.MetricsRepository) envOption {
	return func(deps *handlers.Deps, _ *router.Options) { deps.Dashboard = d }
}

func withLoginLimiter(l *rl.Limiter) envOption {
	return func(_ *handlers.Deps, o *router.Options) { o.LoginLimiter = l }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	db := repo.NewInMemoryDB()
	db.Now = func() time.Time { return testNow }

	admins, err := auth.NewCredentialSet([]config.AdminConfig{{Username: "admin", Password: "1234", Name: "Ma. Fe M. Cantutay"}})
	require.NoError(t, err)

	renderer, err := views.New()
	require.NoError(t, err)

	sessions := auth.NewSessionManager("test-secret", time.Hour, false, auth.NewMemoryRevocationStore())
	m := metrics.New()
	catalog := repo.NewInMemoryCatalogRepository(db)
	stockOpts := repo.StockOptions{LowStockThreshold: 10, ExpiryWindowDays: 30}

	deps := handlers.Deps{
		Catalog:       catalog,
		Stock:         repo.NewInMemoryStockRepository(db, stockOpts),
		Dashboard:     repo.NewInMemoryMetricsRepository(db),
		Notifications: repo.NewInMemoryNotificationRepository(db),
		Authenticator: auth.NewAuthenticator(admins, repo.NewInMemoryUserRepository(db)),
		Sessions:      sessions,
		Views:         renderer,
		Metrics:       m,
		Now:           func() time.Time { return testNow },
	}
	ropts := router.Options{Metrics: m, Sessions: sessions}
	for _, o := range opts {
		o(&deps, &ropts)
	}

	return &testEnv{
		router:   router.NewRouter(handlers.NewServer(deps), ropts),
		db:       db,
		sessions: sessions,
		metrics:  m,
		catalog:  catalog,
		deps:     deps,
	}
}

// sessionCookie logs in through the real login endpoint and returns the session cookie.
func (e *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.postForm("/auth", url.Values{"username": {"admin"}, "password": {"1234"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.1:1234"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// followFlash replays the flash cookie of a redirect on the target page and returns its body.
func (e *testEnv) followFlash(t *testing.T, w *httptest.ResponseRecorder, session *http.Cookie) string {
	t.Helper()
	cookies := []*http.Cookie{}
	if session != nil {
		cookies = append(cookies, session)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name != auth.CookieName && c.MaxAge >= 0 {
			cookies = append(cookies, c)
		}
	}
	next := e.get(w.Header().Get("Location"), cookies...)
	return next.Body.String()
}

func (e *testEnv) product(t *testing.T, id int) models.Product {
	t.Helper()
	p, err := e.catalog.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p
}

type failingDashboard struct{}

func (failingDashboard) DashboardSummary(context.Context, time.Time) (models.DashboardSummary, error) {
	return models.EmptyDashboardSummary(), errors.New("connection refused")
}

func (e *testEnv) postFormWithReferer(path string, form url.Values, cookie *http.Cookie, referer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", referer)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
