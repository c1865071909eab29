// Package services – CatalogService
//
// This file implements the CatalogService, which serves property listings,
// property detail (counting views), property maintenance, the commune
// overview, and free-text search.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
	"github.com/tbourn/go-property-backend/internal/observability"
	"github.com/tbourn/go-property-backend/internal/repo"
)

// CatalogStore is the persistence contract required by CatalogService.
type CatalogStore interface {
	ListProperties(ctx context.Context, c filter.Criteria) ([]domain.Property, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	IncrementViewCount(ctx context.Context, id string) error
	CreateProperty(ctx context.Context, p *domain.Property) error
	UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	ListCommunes(ctx context.Context) ([]domain.Commune, error)
}

// CatalogService provides the read and maintenance operations of the
// property catalog.
type CatalogService struct {
	Store CatalogStore
}

// NewCatalogService constructs a CatalogService over store.
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{Store: store}
}

func catalogSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.StartSpan(ctx, "services/CatalogService", name, attrs...)
}

// ListProperties returns the properties matching c.
func (s *CatalogService) ListProperties(ctx context.Context, c filter.Criteria) ([]domain.Property, error) {
	ctx, span := catalogSpan(ctx, "ListProperties",
		attribute.String("filter.commune", c.Commune),
		attribute.String("filter.type", c.PropertyType),
		attribute.String("filter.sort", string(c.Sort)),
	)
	defer span.End()

	props, err := s.Store.ListProperties(ctx, c)
	if err != nil {
		return nil, observability.SpanError(span, err)
	}
	span.SetAttributes(attribute.Int("result.count", len(props)))
	return props, nil
}

// GetProperty returns the property and records one view. A failure to record
// the view is logged and does not fail the lookup.
func (s *CatalogService) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	ctx, span := catalogSpan(ctx, "GetProperty", attribute.String("property.id", id))
	defer span.End()

	p, err := s.Store.GetProperty(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if err := s.Store.IncrementViewCount(ctx, id); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("property_id", id).Msg("view count not recorded")
		return p, nil
	}
	p.ViewCount++
	observability.PropertyViewed()
	return p, nil
}

// CreateProperty validates and stores a new listing. The view counter always
// starts at zero.
func (s *CatalogService) CreateProperty(ctx context.Context, p domain.Property) (*domain.Property, error) {
	ctx, span := catalogSpan(ctx, "CreateProperty", attribute.String("property.commune", p.Commune))
	defer span.End()

	p.Name = strings.TrimSpace(p.Name)
	p.Commune = strings.TrimSpace(p.Commune)
	p.ViewCount = 0
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProperty, err)
	}
	if err := s.Store.CreateProperty(ctx, &p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrPropertyExists
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProperty applies patch to the property with the given id. The
// merged result must still validate.
func (s *CatalogService) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	ctx, span := catalogSpan(ctx, "UpdateProperty", attribute.String("property.id", id))
	defer span.End()

	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidProperty)
	}
	cur, err := s.Store.GetProperty(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	merged := *cur
	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProperty, err)
	}

	out, err := s.Store.UpdateProperty(ctx, id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	return out, err
}

// ListCommunes returns the commune overview.
func (s *CatalogService) ListCommunes(ctx context.Context) ([]domain.Commune, error) {
	ctx, span := catalogSpan(ctx, "ListCommunes")
	defer span.End()
	return s.Store.ListCommunes(ctx)
}

// Search returns the properties whose text matches query, price ascending.
// A whitespace-only query matches the whole catalog; only "" is rejected.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Property, error) {
	ctx, span := catalogSpan(ctx, "Search", attribute.String("query", query))
	defer span.End()

	if query == "" {
		return nil, ErrEmptyQuery
	}
	props, err := s.Store.ListProperties(ctx, filter.Criteria{Query: query})
	if err != nil {
		return nil, observability.SpanError(span, err)
	}
	observability.SearchDone(len(props))
	span.SetAttributes(attribute.Int("result.count", len(props)))
	return props, nil
}
