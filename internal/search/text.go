// Package search provides the free-text matching used to narrow the property
// catalog. It is deterministic, allocation-light, and safe for concurrent use:
//
//   - No logging in the library (callers decide how/what to log)
//   - Functional options (Option pattern) for normalization behavior
//   - Unicode-aware case folding with optional diacritic stripping, so
//     "nunoa" finds "Ñuñoa" and "CONDES" finds "Las Condes"
//   - Empty or whitespace-only queries match everything
//
// Matching is a plain substring test of the normalized query against the
// normalized, space-joined fields.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-property-backend/internal/domain"
)

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	foldAccents bool
}

func defaultConfig() config {
	return config{foldAccents: true}
}

// WithAccentFolding toggles diacritic stripping (á → a, ñ → n).
func WithAccentFolding(on bool) Option {
	return func(c *config) { c.foldAccents = on }
}

// ----------------------------------------------------------------------------
// Matcher

// Matcher tests queries against text fields. The zero value is not usable;
// build one with NewMatcher.
type Matcher struct {
	cfg config
}

// NewMatcher returns a Matcher configured by opts.
func NewMatcher(opts ...Option) *Matcher {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Matcher{cfg: cfg}
}

var defaultMatcher = NewMatcher()

// Matches reports whether query matches fields using the default Matcher.
func Matches(query string, fields ...string) bool {
	return defaultMatcher.Matches(query, fields...)
}

// Normalize folds case, optionally strips diacritics, and collapses runs of
// whitespace to one space. The result is trimmed.
func (m *Matcher) Normalize(s string) string {
	// Casers and transformers keep state; build fresh ones per call.
	s = cases.Fold().String(s)
	if m.cfg.foldAccents {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if out, _, err := transform.String(t, s); err == nil {
			s = out
		}
	}
	return strings.TrimSpace(normalizeWhitespace(s))
}

// Matches reports whether the normalized query is a substring of the
// normalized, space-joined fields. An empty query matches everything.
func (m *Matcher) Matches(query string, fields ...string) bool {
	q := m.Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(m.Normalize(strings.Join(fields, " ")), q)
}

// PropertyText returns the searchable fields of p in a fixed order:
// name, address, commune, property type, unit number, status.
func PropertyText(p *domain.Property) []string {
	return []string{p.Name, p.Address, p.Commune, p.PropertyType, p.UnitNumber, p.Status}
}

// ----------------------------------------------------------------------------
// Helpers

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
