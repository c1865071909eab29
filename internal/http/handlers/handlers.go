package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-property-backend/internal/calculator"
	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
	"github.com/tbourn/go-property-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// CatalogService serves properties and communes.
type CatalogService interface {
	ListProperties(ctx context.Context, c filter.Criteria) ([]domain.Property, error)
	// GetProperty returns the property and counts the view.
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, p domain.Property) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	ListCommunes(ctx context.Context) ([]domain.Commune, error)
	Search(ctx context.Context, query string) ([]domain.Property, error)
}

// CalculatorService projects compound returns.
type CalculatorService interface {
	Calculate(ctx context.Context, in calculator.Input) (calculator.Projection, error)
	Schedule(ctx context.Context, in calculator.Input) ([]calculator.YearPoint, error)
}

// InvestmentService records investments and summarizes portfolios.
type InvestmentService interface {
	// Create returns replayed=true when idemKey matched a previous request.
	Create(ctx context.Context, in services.NewInvestment, idemKey string) (*domain.Investment, bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Investment, error)
	PortfolioStats(ctx context.Context, userID string) (domain.PortfolioStats, error)
}

// UserService registers and fetches accounts.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints. It depends only on the service
// interfaces above.
type Handlers struct {
	catalog     CatalogService
	calc        CalculatorService
	investments InvestmentService
	users       UserService
}

// New constructs a Handlers bound to the given services.
func New(catalog CatalogService, calc CalculatorService, investments InvestmentService, users UserService) *Handlers {
	return &Handlers{catalog: catalog, calc: calc, investments: investments, users: users}
}

// userID returns the acting user set by middleware.Identity. Without that
// middleware it falls back to the X-User-ID header, then "demo-user".
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
