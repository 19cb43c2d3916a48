package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_IssueAndParse(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour, false, nil)

	token, issued, err := m.Issue(Session{Username: "admin", Name: "Ma. Fe M. Cantutay"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	parsed, err := m.Parse(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, parsed.Authenticated)
	assert.Equal(t, "admin", parsed.Username)
	assert.Equal(t, "Ma. Fe M. Cantutay", parsed.Name)
	assert.Equal(t, issued.ID, parsed.ID)
	assert.True(t, issued.ExpiresAt.Equal(parsed.ExpiresAt))
}

func TestSessionManager_Rejects(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour, false, nil)
	token, _, err := m.Issue(Session{Username: "admin"})
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := m.Parse(context.Background(), "")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewSessionManager("another-secret", time.Hour, false, nil)
		_, err := other.Parse(context.Background(), token)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := m.Parse(context.Background(), token+"x")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewSessionManager("test-secret", time.Hour, false, nil)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(context.Background(), token)
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestSessionManager_Revoke(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour, false, NewMemoryRevocationStore())
	token, s, err := m.Issue(Session{Username: "admin"})
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), s))

	_, err = m.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestSessionManager_Cookies(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour, true, nil)
	token, s, err := m.Issue(Session{Username: "admin"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.SetCookie(w, token, s)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(cookies[0])
	parsed, err := m.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed.Username)

	_, err = m.FromRequest(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.ErrorIs(t, err, ErrNoSession)

	w = httptest.NewRecorder()
	m.ClearCookie(w)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestMemoryRevocationStore_Expires(t *testing.T) {
	store := NewMemoryRevocationStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(context.Background(), "abc", now.Add(time.Minute)))
	revoked, err := store.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	revoked, err = store.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
