package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/medisync/internal/config"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login. It never says which field was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type credential struct {
	hash []byte
	name string
}

// CredentialSet is the fixed administrator set, hashed once at startup and read-only after.
type CredentialSet struct {
	byUsername map[string]credential
}

// NewCredentialSet hashes every administrator password with bcrypt.
func NewCredentialSet(admins []config.AdminConfig) (*CredentialSet, error) {
	set := &CredentialSet{byUsername: make(map[string]credential, len(admins))}
	for _, a := range admins {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", a.Username, err)
		}
		set.byUsername[a.Username] = credential{hash: hash, name: a.Name}
	}
	return set, nil
}

// dummyHash keeps the cost of a miss close to the cost of a hit.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("medisync-dummy-password"), bcrypt.DefaultCost)

// Authenticator checks credentials against the administrator set first, then the users table.
type Authenticator struct {
	admins *CredentialSet
	users  repo.UserRepository
}

// NewAuthenticator builds an Authenticator. users may be nil to disable the table fallback.
func NewAuthenticator(admins *CredentialSet, users repo.UserRepository) *Authenticator {
	return &Authenticator{admins: admins, users: users}
}

// Authenticate returns an unsigned Session for a matching username and password.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	if a.admins != nil {
		if c, ok := a.admins.byUsername[username]; ok {
			if bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil {
				return Session{Authenticated: true, Username: username, Name: c.name}, nil
			}
			return Session{}, ErrInvalidCredentials
		}
	}

	if a.users == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Session{}, ErrInvalidCredentials
	}

	u, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	name := u.Name
	if name == "" {
		name = u.Username
	}
	return Session{Authenticated: true, Username: u.Username, Name: name}, nil
}
