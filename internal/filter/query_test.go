package filter

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_Full(t *testing.T) {
	v := url.Values{
		"commune":      {"Las Condes"},
		"propertyType": {"Pack"},
		"status":       {" Disponible "},
		"minPrice":     {"100"},
		"maxPrice":     {"300"},
		"minYield":     {"8.5"},
		"maxYield":     {"16"},
		"q":            {"trinitarias"},
		"sort":         {"yield-desc"},
	}
	c, err := ParseQuery(v)
	require.NoError(t, err)

	assert.Equal(t, "Las Condes", c.Commune)
	assert.Equal(t, "Pack", c.PropertyType)
	assert.Equal(t, "Disponible", c.Status)
	require.NotNil(t, c.MinPrice)
	require.NotNil(t, c.MaxPrice)
	assert.EqualValues(t, 100, *c.MinPrice)
	assert.EqualValues(t, 300, *c.MaxPrice)
	assert.Equal(t, "8.5", c.MinYield.String())
	assert.Equal(t, "16", c.MaxYield.String())
	assert.Equal(t, "trinitarias", c.Query)
	assert.Equal(t, SortYieldDesc, c.Sort)
}

func TestParseQuery_BlankMeansAbsent(t *testing.T) {
	c, err := ParseQuery(url.Values{"minPrice": {""}, "minYield": {"  "}, "commune": {""}})
	require.NoError(t, err)
	assert.Nil(t, c.MinPrice)
	assert.Nil(t, c.MinYield)
	assert.Empty(t, c.Commune)
	assert.Empty(t, c.Predicates())
}

func TestParseQuery_Errors(t *testing.T) {
	for _, v := range []url.Values{
		{"minPrice": {"abc"}},
		{"maxPrice": {"12.5"}},
		{"minYield": {"ten"}},
		{"maxYield": {"1,5"}},
		{"sort": {"random"}},
		{"minYield": {"1e-10000000"}},
		{"maxYield": {"1e-2000000000"}},
		{"minYield": {"0.0000001"}},
		{"maxYield": {"-1"}},
		{"minYield": {"100.5"}},
		{"maxYield": {"1e9"}},
	} {
		_, err := ParseQuery(v)
		assert.True(t, errors.Is(err, ErrInvalidFilter), "values %v: %v", v, err)
	}
}

func TestParseQuery_YieldBoundsInclusive(t *testing.T) {
	c, err := ParseQuery(url.Values{"minYield": {"0"}, "maxYield": {"1e2"}})
	require.NoError(t, err)
	assert.Equal(t, "0", c.MinYield.String())
	assert.Equal(t, "100", c.MaxYield.String())

	c, err = ParseQuery(url.Values{"minYield": {"0.000001"}})
	require.NoError(t, err)
	assert.Equal(t, "0.000001", c.MinYield.String())
}
