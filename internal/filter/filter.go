// Package filter composes property predicates. It is the single place where
// catalog narrowing rules live: the stores, the search endpoint, and any
// client-facing listing all go through Criteria so their results cannot drift.
//
// Every populated Criteria field contributes one predicate; predicates are
// combined with logical AND and absent fields are not applied. Results are
// ordered by the requested SortKey (price ascending by default).
package filter

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/search"
)

// ErrInvalidFilter is returned when filter input cannot be parsed.
var ErrInvalidFilter = errors.New("invalid filter")

// SortKey selects the ordering of a filtered listing.
type SortKey string

// Supported orderings.
const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortYieldDesc SortKey = "yield-desc"
	SortSizeDesc  SortKey = "size-desc"
)

// Valid reports whether k is a supported ordering. The empty key is valid
// and means SortPriceAsc.
func (k SortKey) Valid() bool {
	switch k {
	case "", SortPriceAsc, SortPriceDesc, SortYieldDesc, SortSizeDesc:
		return true
	}
	return false
}

// Criteria describes a catalog query. Nil pointers and empty strings mean
// "not filtered".
type Criteria struct {
	Commune      string
	PropertyType string
	Status       string
	MinPrice     *int64
	MaxPrice     *int64
	MinYield     *decimal.Decimal
	MaxYield     *decimal.Decimal
	// Query is a free-text search over name, address, commune, type, unit
	// number, and status.
	Query string
	Sort  SortKey
}

// Predicate reports whether a property should be kept.
type Predicate func(p *domain.Property) bool

// Predicates returns one predicate per populated field, in a fixed order.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if c.Commune != "" {
		commune := c.Commune
		preds = append(preds, func(p *domain.Property) bool { return p.Commune == commune })
	}
	if c.PropertyType != "" {
		typ := c.PropertyType
		preds = append(preds, func(p *domain.Property) bool { return p.PropertyType == typ })
	}
	if c.MinPrice != nil {
		lo := *c.MinPrice
		preds = append(preds, func(p *domain.Property) bool { return p.Price >= lo })
	}
	if c.MaxPrice != nil {
		hi := *c.MaxPrice
		preds = append(preds, func(p *domain.Property) bool { return p.Price <= hi })
	}
	if c.MinYield != nil {
		lo := *c.MinYield
		preds = append(preds, func(p *domain.Property) bool { return p.AnnualYield.GreaterThanOrEqual(lo) })
	}
	if c.MaxYield != nil {
		hi := *c.MaxYield
		preds = append(preds, func(p *domain.Property) bool { return p.AnnualYield.LessThanOrEqual(hi) })
	}
	if c.Status != "" {
		status := c.Status
		preds = append(preds, func(p *domain.Property) bool { return p.Status == status })
	}
	if q := c.Query; q != "" {
		preds = append(preds, func(p *domain.Property) bool { return search.Matches(q, search.PropertyText(p)...) })
	}
	return preds
}

// All combines predicates with logical AND. With no predicates it accepts
// everything.
func All(preds ...Predicate) Predicate {
	return func(p *domain.Property) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Apply returns the properties matching c, ordered by c.Sort. The input is
// not modified and the result is never nil.
func Apply(props []domain.Property, c Criteria) []domain.Property {
	keep := All(c.Predicates()...)
	out := make([]domain.Property, 0, len(props))
	for i := range props {
		if keep(&props[i]) {
			out = append(out, props[i])
		}
	}
	Sort(out, c.Sort)
	return out
}

// Search narrows props by free text only and keeps price-ascending order.
func Search(props []domain.Property, query string) []domain.Property {
	return Apply(props, Criteria{Query: query})
}

// Sort orders props in place by key. Ties are broken by price ascending and
// then by ID so results are deterministic.
func Sort(props []domain.Property, key SortKey) {
	byPriceThenID := func(a, b *domain.Property) bool {
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.ID < b.ID
	}

	var less func(a, b *domain.Property) bool
	switch key {
	case SortPriceDesc:
		less = func(a, b *domain.Property) bool {
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.ID < b.ID
		}
	case SortYieldDesc:
		less = func(a, b *domain.Property) bool {
			if c := a.AnnualYield.Cmp(b.AnnualYield); c != 0 {
				return c > 0
			}
			return byPriceThenID(a, b)
		}
	case SortSizeDesc:
		less = func(a, b *domain.Property) bool {
			if c := a.Size.Cmp(b.Size); c != 0 {
				return c > 0
			}
			return byPriceThenID(a, b)
		}
	default:
		less = byPriceThenID
	}
	sort.SliceStable(props, func(i, j int) bool { return less(&props[i], &props[j]) })
}
