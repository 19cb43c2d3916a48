package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie set after a successful login.
const CookieName = "medisync_session"

var (
	// ErrNoSession is returned when a request carries no valid session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionRevoked is returned for a session ended by logout.
	ErrSessionRevoked = errors.New("session has been revoked")
)

// Session is the authenticated state carried by the session cookie.
type Session struct {
	Authenticated bool
	Username      string
	Name          string
	ID            string
	ExpiresAt     time.Time
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// SessionManager signs, parses and revokes session tokens.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoked RevocationStore
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, secure bool, revoked RevocationStore) *SessionManager {
	if revoked == nil {
		revoked = NewMemoryRevocationStore()
	}
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		secure:  secure,
		revoked: revoked,
		now:     time.Now,
	}
}

// Issue signs s with a fresh id and expiry and returns the token with the completed session.
func (m *SessionManager) Issue(s Session) (string, Session, error) {
	now := m.now()
	s.Authenticated = true
	s.ID = uuid.NewString()
	s.ExpiresAt = now.Add(m.ttl).Truncate(time.Second)

	claims := sessionClaims{
		Name: s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, s, nil
}

// Parse validates the token signature, expiry and revocation.
func (m *SessionManager) Parse(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return Session{}, ErrSessionRevoked
	}

	return Session{
		Authenticated: true,
		Username:      claims.Subject,
		Name:          claims.Name,
		ID:            claims.ID,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}

// Revoke rejects s until it would have expired anyway.
func (m *SessionManager) Revoke(ctx context.Context, s Session) error {
	if s.ID == "" {
		return nil
	}
	return m.revoked.Revoke(ctx, s.ID, s.ExpiresAt)
}

// SetCookie writes the session cookie.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie in the browser.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest parses the session cookie of r.
func (m *SessionManager) FromRequest(r *http.Request) (Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return m.Parse(r.Context(), c.Value)
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
