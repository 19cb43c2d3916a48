package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogerio-castellano/medisync/internal/auth"
	rl "github.com/rogerio-castellano/medisync/internal/http/rate_limiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = env.get("/", env.sessionCookie(t))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLoginPage(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/auth"`)
}

func TestLoginHandler_Valid(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/auth", "/login"} {
		t.Run(path, func(t *testing.T) {
			w := env.postForm(path, url.Values{"username": {"admin"}, "password": {"1234"}}, nil)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/dashboard", w.Header().Get("Location"))

			var session *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == auth.CookieName {
					session = c
				}
			}
			require.NotNil(t, session)
			assert.True(t, session.HttpOnly)

			dash := env.get("/dashboard", session)
			assert.Equal(t, http.StatusOK, dash.Code)
			assert.Contains(t, dash.Body.String(), "Ma. Fe M. Cantutay")
		})
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.LoginAttemptsTotal.WithLabelValues("success")))
}

func TestLoginHandler_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "wrong password", form: url.Values{"username": {"admin"}, "password": {"nope"}}},
		{name: "unknown user", form: url.Values{"username": {"ghost"}, "password": {"1234"}}},
		{name: "missing fields", form: url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.postForm("/auth", tt.form, nil)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			for _, c := range w.Result().Cookies() {
				assert.NotEqual(t, auth.CookieName, c.Name, "no session on failure")
			}
			assert.Contains(t, env.followFlash(t, w, nil), "Invalid credentials")
		})
	}
}

func TestLoginHandler_RateLimited(t *testing.T) {
	env := newTestEnv(t, withLoginLimiter(rl.New(0.001, 2)))
	form := url.Values{"username": {"admin"}, "password": {"bad"}}

	assert.Equal(t, http.StatusSeeOther, env.postForm("/auth", form, nil).Code)
	assert.Equal(t, http.StatusSeeOther, env.postForm("/auth", form, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, env.postForm("/auth", form, nil).Code)
}

func TestLogoutHandler_RevokesSession(t *testing.T) {
	env := newTestEnv(t)
	session := env.sessionCookie(t)

	w := env.get("/logout", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// The old cookie value must no longer open protected pages.
	w = env.get("/dashboard", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	gets := []string{"/dashboard", "/products", "/purchases", "/orders", "/notifications", "/notification"}
	for _, path := range gets {
		t.Run("GET "+path, func(t *testing.T) {
			w := env.get(path)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			assert.Contains(t, env.followFlash(t, w, nil), "Please log in to access this page")
		})
	}

	posts := []string{"/add-product", "/add-purchase", "/add-order", "/transaction/add"}
	for _, path := range posts {
		t.Run("POST "+path, func(t *testing.T) {
			w := env.postForm(path, url.Values{"product_id": {"1"}, "quantity": {"1"}}, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
		})
	}
}
