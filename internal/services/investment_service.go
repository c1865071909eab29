// Package services – InvestmentService
//
// This file implements the InvestmentService: recording a reservation of a
// property by a user, listing a user's investments, and summarizing the
// portfolio for the dashboard. Creation may carry an idempotency key; a
// retry with the same key replays the investment created the first time.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/observability"
	"github.com/tbourn/go-property-backend/internal/repo"
)

// IdempotencyScope namespaces investment idempotency keys.
const IdempotencyScope = "investments"

// InvestmentStore is the persistence contract required by InvestmentService.
type InvestmentStore interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	CreateInvestment(ctx context.Context, inv *domain.Investment) error
	GetInvestment(ctx context.Context, id string) (*domain.Investment, error)
	ListInvestmentsByUser(ctx context.Context, userID string) ([]domain.Investment, error)
	PortfolioStats(ctx context.Context, userID string) (domain.PortfolioStats, error)
	GetIdempotency(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error)
	DeleteIdempotency(ctx context.Context, userID, scope, key string) error
}

// NewInvestment is the input of InvestmentService.Create.
type NewInvestment struct {
	// ActorID is the user issuing the request and owns the idempotency key.
	// It defaults to UserID.
	ActorID          string
	UserID           string
	PropertyID       string
	InvestmentAmount int64
	Status           string     // defaults to Active
	PurchaseDate     *time.Time // defaults to now
}

// InvestmentService records investments and summarizes portfolios.
type InvestmentService struct {
	Store InvestmentStore
	// IdempotencyTTL bounds how long a key can be replayed.
	IdempotencyTTL time.Duration
	Now            func() time.Time
}

// NewInvestmentService constructs an InvestmentService with a 24h replay window.
func NewInvestmentService(store InvestmentStore, ttl time.Duration) *InvestmentService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &InvestmentService{
		Store:          store,
		IdempotencyTTL: ttl,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

func investmentSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.StartSpan(ctx, "services/InvestmentService", name, attrs...)
}

// Create validates and records an investment. When idemKey is non-empty and
// an unexpired record exists for (actor, key), the original investment is
// returned with replayed=true and nothing new is stored. The key is reserved
// before the insert, so concurrent requests with one key store at most one
// investment; a loser that cannot replay yet gets ErrIdempotencyInFlight.
//
// Errors: ErrInvalidInvestment for bad input, ErrUnknownUser and
// ErrUnknownProperty for dangling references.
func (s *InvestmentService) Create(ctx context.Context, in NewInvestment, idemKey string) (inv *domain.Investment, replayed bool, err error) {
	ctx, span := investmentSpan(ctx, "Create",
		attribute.String("user.id", in.UserID),
		attribute.String("property.id", in.PropertyID),
		attribute.Bool("idempotent", idemKey != ""),
	)
	defer span.End()

	idemKey = strings.TrimSpace(idemKey)
	owner := strings.TrimSpace(in.ActorID)
	if owner == "" {
		owner = strings.TrimSpace(in.UserID)
	}
	if idemKey != "" {
		if prev, ok := s.replay(ctx, owner, idemKey); ok {
			observability.InvestmentReplayed()
			return prev, true, nil
		}
	}

	rec := domain.Investment{
		UserID:           strings.TrimSpace(in.UserID),
		PropertyID:       strings.TrimSpace(in.PropertyID),
		InvestmentAmount: in.InvestmentAmount,
		Status:           in.Status,
	}
	if rec.Status == "" {
		rec.Status = domain.InvestmentActive
	}
	if in.PurchaseDate != nil {
		rec.PurchaseDate = in.PurchaseDate.UTC()
	} else {
		rec.PurchaseDate = s.now()
	}
	if err := rec.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInvestment, err)
	}

	if _, err := s.Store.GetUser(ctx, rec.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, ErrUnknownUser
		}
		return nil, false, err
	}
	if _, err := s.Store.GetProperty(ctx, rec.PropertyID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, ErrUnknownProperty
		}
		return nil, false, err
	}

	if idemKey != "" {
		rec.ID = uuid.NewString()
		_, err := s.Store.CreateIdempotency(ctx, owner, IdempotencyScope, idemKey, rec.ID, http.StatusCreated, s.IdempotencyTTL)
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			if prev, ok := s.replay(ctx, owner, idemKey); ok {
				observability.InvestmentReplayed()
				return prev, true, nil
			}
			return nil, false, ErrIdempotencyInFlight
		case err != nil:
			return nil, false, observability.SpanError(span, err)
		}
	}

	if err := s.Store.CreateInvestment(ctx, &rec); err != nil {
		if idemKey != "" {
			if derr := s.Store.DeleteIdempotency(ctx, owner, IdempotencyScope, idemKey); derr != nil {
				zerolog.Ctx(ctx).Warn().Err(derr).Str("key", idemKey).Msg("idempotency reservation not released")
			}
		}
		return nil, false, observability.SpanError(span, err)
	}
	observability.InvestmentCreated()
	return &rec, false, nil
}

func (s *InvestmentService) replay(ctx context.Context, userID, key string) (*domain.Investment, bool) {
	rec, err := s.Store.GetIdempotency(ctx, userID, IdempotencyScope, key, s.now())
	if err != nil {
		return nil, false
	}
	inv, err := s.Store.GetInvestment(ctx, rec.ResourceID)
	if err != nil {
		return nil, false
	}
	return inv, true
}

// ListByUser returns the user's investments, oldest first.
func (s *InvestmentService) ListByUser(ctx context.Context, userID string) ([]domain.Investment, error) {
	ctx, span := investmentSpan(ctx, "ListByUser", attribute.String("user.id", userID))
	defer span.End()
	return s.Store.ListInvestmentsByUser(ctx, userID)
}

// PortfolioStats returns the dashboard summary for userID.
func (s *InvestmentService) PortfolioStats(ctx context.Context, userID string) (domain.PortfolioStats, error) {
	ctx, span := investmentSpan(ctx, "PortfolioStats", attribute.String("user.id", userID))
	defer span.End()
	return s.Store.PortfolioStats(ctx, userID)
}

func (s *InvestmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
