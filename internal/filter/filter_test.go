package filter

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-property-backend/internal/domain"
)

func prop(id, commune, typ, status string, price int64, yield, size string) domain.Property {
	return domain.Property{
		ID:           id,
		Name:         "Edificio " + id,
		Address:      "Calle " + id + ", " + commune,
		Commune:      commune,
		PropertyType: typ,
		UnitNumber:   typ + " " + id,
		Status:       status,
		Price:        price,
		AnnualYield:  decimal.RequireFromString(yield),
		Size:         decimal.RequireFromString(size),
	}
}

func catalog() []domain.Property {
	return []domain.Property{
		prop("p-trinitarias", "Las Condes", domain.TypePack, domain.StatusEntregaInmediata, 193, "15.9", "3.51"),
		prop("p-portal", "San Joaquín", domain.TypeBodega, domain.StatusEntregaInmediata, 91, "8.1", "2.40"),
		prop("p-neo", "La Florida", domain.TypeEstacionamiento, domain.StatusEntregaInmediata, 249, "11.1", "12.50"),
		prop("p-mirador", "Santiago", domain.TypeBodega, domain.StatusEnVerde, 99, "5.5", "1.77"),
		prop("p-santa-maria", "Independencia", domain.TypeEstacionamiento, domain.StatusEntregaInmediata, 299, "9.2", "12.50"),
		prop("p-ceppi", "La Cisterna", domain.TypeBodega, domain.StatusEntregaInmediata, 115, "10.5", "3.93"),
	}
}

func i64(v int64) *int64 { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ids(props []domain.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestApply_NoCriteria_SortedByPrice(t *testing.T) {
	got := Apply(catalog(), Criteria{})
	assert.Equal(t, []string{"p-portal", "p-mirador", "p-ceppi", "p-trinitarias", "p-neo", "p-santa-maria"}, ids(got))
}

func TestApply_EachField(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"commune", Criteria{Commune: "Las Condes"}, []string{"p-trinitarias"}},
		{"type", Criteria{PropertyType: domain.TypeEstacionamiento}, []string{"p-neo", "p-santa-maria"}},
		{"status", Criteria{Status: domain.StatusEnVerde}, []string{"p-mirador"}},
		{"min price inclusive", Criteria{MinPrice: i64(249)}, []string{"p-neo", "p-santa-maria"}},
		{"max price inclusive", Criteria{MaxPrice: i64(99)}, []string{"p-portal", "p-mirador"}},
		{"min yield inclusive", Criteria{MinYield: dec("11.1")}, []string{"p-trinitarias", "p-neo"}},
		{"max yield", Criteria{MaxYield: dec("8.1")}, []string{"p-portal", "p-mirador"}},
		{"combined AND", Criteria{PropertyType: domain.TypeBodega, MinYield: dec("8"), MaxPrice: i64(120)}, []string{"p-portal", "p-ceppi"}},
		{"query", Criteria{Query: "condes"}, []string{"p-trinitarias"}},
		{"commune must be exact", Criteria{Commune: "las condes"}, []string{}},
		{"inverted price range", Criteria{MinPrice: i64(300), MaxPrice: i64(100)}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(catalog(), tc.c)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

// Every combination of criteria yields a price-sorted subset of the catalog.
func TestApply_SubsetAndSorted_AllCombinations(t *testing.T) {
	all := catalog()
	known := map[string]bool{}
	for _, p := range all {
		known[p.ID] = true
	}

	communes := []string{"", "Las Condes", "Santiago", "Nowhere"}
	types := []string{"", domain.TypeBodega, domain.TypeEstacionamiento}
	statuses := []string{"", domain.StatusEntregaInmediata, domain.StatusVendido}
	prices := []*int64{nil, i64(0), i64(100), i64(250), i64(1000)}
	yields := []*decimal.Decimal{nil, dec("0"), dec("8.1"), dec("12"), dec("30")}

	for _, cm := range communes {
		for _, ty := range types {
			for _, st := range statuses {
				for _, minP := range prices {
					for _, maxP := range prices {
						for _, minY := range yields {
							for _, maxY := range yields {
								c := Criteria{Commune: cm, PropertyType: ty, Status: st, MinPrice: minP, MaxPrice: maxP, MinYield: minY, MaxYield: maxY}
								got := Apply(all, c)
								if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Price < got[j].Price }) {
									t.Fatalf("not sorted by price for %+v: %v", c, ids(got))
								}
								for _, p := range got {
									if !known[p.ID] {
										t.Fatalf("unknown property %q in result", p.ID)
									}
									if !All(c.Predicates()...)(&p) {
										t.Fatalf("property %q violates %+v", p.ID, c)
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := catalog()
	before := ids(in)
	_ = Apply(in, Criteria{Sort: SortPriceDesc})
	assert.Equal(t, before, ids(in))
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortPriceAsc, []string{"p-portal", "p-mirador", "p-ceppi", "p-trinitarias", "p-neo", "p-santa-maria"}},
		{SortPriceDesc, []string{"p-santa-maria", "p-neo", "p-trinitarias", "p-ceppi", "p-mirador", "p-portal"}},
		{SortYieldDesc, []string{"p-trinitarias", "p-neo", "p-ceppi", "p-santa-maria", "p-portal", "p-mirador"}},
		// equal sizes fall back to price ascending
		{SortSizeDesc, []string{"p-neo", "p-santa-maria", "p-ceppi", "p-trinitarias", "p-portal", "p-mirador"}},
	}
	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Apply(catalog(), Criteria{Sort: tc.key})))
		})
	}
}

func TestSearch(t *testing.T) {
	got := Search(catalog(), "condes")
	require.Len(t, got, 1)
	assert.Equal(t, "Las Condes", got[0].Commune)

	assert.Empty(t, Search(catalog(), "zzz-nomatch"))
	assert.Len(t, Search(catalog(), "  "), len(catalog()))
	assert.Equal(t, []string{"p-mirador", "p-santa-maria"}, ids(Search(catalog(), "SANT")))
}

func TestAll_Empty(t *testing.T) {
	p := catalog()[0]
	assert.True(t, All()(&p))
}

func TestSortKey_Valid(t *testing.T) {
	for _, k := range []SortKey{"", SortPriceAsc, SortPriceDesc, SortYieldDesc, SortSizeDesc} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, SortKey("name-asc").Valid())
}
