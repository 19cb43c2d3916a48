package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/medisync/internal/db"
)

var (
	// ErrProductNotFound is returned when a product id matches no row.
	ErrProductNotFound = errors.New("product not found")
	// ErrUnknownReference is returned when a category or unit id matches no row.
	ErrUnknownReference = errors.New("unknown category or unit")
	// ErrUserNotFound is returned when a username matches no persisted user.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatedValueUnique is returned when an insert violates a unique constraint.
	ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")
	// ErrInvalidQuantity is returned for non-positive movement quantities.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = db.DefaultStatementTimeout
	}
	return context.WithTimeout(ctx, d)
}

// dateOf truncates t to its calendar day in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"
