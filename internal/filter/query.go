package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Query parameter names accepted by ParseQuery.
const (
	ParamCommune      = "commune"
	ParamPropertyType = "propertyType"
	ParamStatus       = "status"
	ParamMinPrice     = "minPrice"
	ParamMaxPrice     = "maxPrice"
	ParamMinYield     = "minYield"
	ParamMaxYield     = "maxYield"
	ParamQuery        = "q"
	ParamSort         = "sort"
)

// Yield bounds are percentages. The exponent cap keeps comparisons against
// stored yields from rescaling by huge powers of ten.
var (
	minYieldBound = decimal.Zero
	maxYieldBound = decimal.NewFromInt(100)
)

const maxYieldExponent = 6

// ParseQuery builds Criteria from URL query values. Blank values are treated
// as absent. Numbers that do not parse, yields outside [0, 100] and unknown
// sort keys yield an error wrapping ErrInvalidFilter.
func ParseQuery(v url.Values) (Criteria, error) {
	c := Criteria{
		Commune:      strings.TrimSpace(v.Get(ParamCommune)),
		PropertyType: strings.TrimSpace(v.Get(ParamPropertyType)),
		Status:       strings.TrimSpace(v.Get(ParamStatus)),
		Query:        strings.TrimSpace(v.Get(ParamQuery)),
		Sort:         SortKey(strings.TrimSpace(v.Get(ParamSort))),
	}

	var err error
	if c.MinPrice, err = parseInt(v, ParamMinPrice); err != nil {
		return Criteria{}, err
	}
	if c.MaxPrice, err = parseInt(v, ParamMaxPrice); err != nil {
		return Criteria{}, err
	}
	if c.MinYield, err = parseDecimal(v, ParamMinYield); err != nil {
		return Criteria{}, err
	}
	if c.MaxYield, err = parseDecimal(v, ParamMaxYield); err != nil {
		return Criteria{}, err
	}
	if !c.Sort.Valid() {
		return Criteria{}, fmt.Errorf("%w: unknown sort %q", ErrInvalidFilter, c.Sort)
	}
	return c, nil
}

func parseInt(v url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidFilter, key)
	}
	return &n, nil
}

func parseDecimal(v url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, key)
	}
	if exp := d.Exponent(); exp < -maxYieldExponent || exp > maxYieldExponent ||
		d.LessThan(minYieldBound) || d.GreaterThan(maxYieldBound) {
		return nil, fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidFilter, key)
	}
	return &d, nil
}
