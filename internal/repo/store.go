// Package repo implements the catalog persistence layer. Two implementations
// share the Store contract: MemoryStore (maps behind a RWMutex, the default)
// and GormStore (GORM over pure-Go SQLite or PostgreSQL).
//
// Error semantics:
//   - Lookups of missing records return ErrNotFound.
//   - Unique violations (property ID, commune name, username, email,
//     idempotency tuple) return ErrDuplicate.
//   - Other failures are propagated unchanged.
//
// Records returned by a Store are copies; mutating them never changes stored
// state.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound so both stores report the same value.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique constraint would be violated.
var ErrDuplicate = errors.New("duplicate")

// Store is the catalog persistence contract used by the service layer.
type Store interface {
	// ListProperties returns the properties matching c, ordered by c.Sort
	// (price ascending by default). The result is never nil.
	ListProperties(ctx context.Context, c filter.Criteria) ([]domain.Property, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	// IncrementViewCount adds one view. Unknown ids are ignored.
	IncrementViewCount(ctx context.Context, id string) error
	// CreateProperty stores p, assigning an ID and CreatedAt when unset.
	CreateProperty(ctx context.Context, p *domain.Property) error
	UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)

	ListCommunes(ctx context.Context) ([]domain.Commune, error)
	CreateCommune(ctx context.Context, c *domain.Commune) error

	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	CreateInvestment(ctx context.Context, inv *domain.Investment) error
	GetInvestment(ctx context.Context, id string) (*domain.Investment, error)
	// ListInvestmentsByUser returns the user's investments oldest first.
	ListInvestmentsByUser(ctx context.Context, userID string) ([]domain.Investment, error)
	PortfolioStats(ctx context.Context, userID string) (domain.PortfolioStats, error)

	// GetIdempotency returns a non-expired record or ErrNotFound.
	GetIdempotency(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error)
	// DeleteIdempotency releases a reservation whose operation failed.
	// Deleting an absent record is not an error.
	DeleteIdempotency(ctx context.Context, userID, scope, key string) error
}
