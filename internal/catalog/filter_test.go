package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

func priced(name string, price float64) models.Product {
	return models.Product{
		ID:    models.FlexString(name),
		Name:  name,
		Price: models.FlexFloat{Value: price, Valid: true},
	}
}

func ptr(v float64) *float64 { return &v }

func tenProducts() []models.Product {
	out := make([]models.Product, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, priced(fmt.Sprintf("p%d", i), float64(5+10*i)))
	}
	return out
}

func TestFilter_PriceRangeThenSort(t *testing.T) {
	f := FilterState{Price: PriceRange{Min: ptr(10), Max: ptr(50)}}

	got := Filter(tenProducts(), f)
	require.Len(t, got, 4)
	for i, want := range []float64{15, 25, 35, 45} {
		assert.Equal(t, want, got[i].Price.Value)
	}

	sorted := Sort(got, SortPriceDesc)
	assert.Equal(t, 45.0, sorted[0].Price.Value)
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	f := FilterState{Price: PriceRange{Min: ptr(15), Max: ptr(25)}}
	got := Filter(tenProducts(), f)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].Name)
	assert.Equal(t, "p2", got[1].Name)
}

func TestFilter_MissingPriceCountsAsZero(t *testing.T) {
	products := []models.Product{{Name: "free sample"}, priced("paid", 20)}

	got := Filter(products, FilterState{Price: PriceRange{Max: ptr(10)}})
	require.Len(t, got, 1)
	assert.Equal(t, "free sample", got[0].Name)

	got = Filter(products, FilterState{Price: PriceRange{Min: ptr(1)}})
	require.Len(t, got, 1)
	assert.Equal(t, "paid", got[0].Name)
}

func TestFilter_SearchAllTermsMustMatch(t *testing.T) {
	p := models.Product{Name: "Rice Cake Deluxe", Description: "traditional snack"}

	assert.Len(t, Filter([]models.Product{p}, FilterState{Search: "rice cake"}), 1)
	assert.Len(t, Filter([]models.Product{p}, FilterState{Search: "  RICE   snack "}), 1)
	assert.Empty(t, Filter([]models.Product{p}, FilterState{Search: "rice soda"}))
}

func TestFilter_SearchIsSubstringNotToken(t *testing.T) {
	p := models.Product{Name: "Groundnut Chikki", Brand: "Gokul", Tags: models.FlexStrings{"jaggery", "winter"}}

	assert.Len(t, Filter([]models.Product{p}, FilterState{Search: "nut"}), 1)
	assert.Len(t, Filter([]models.Product{p}, FilterState{Search: "gokul jag"}), 1)
	assert.Len(t, Filter([]models.Product{p}, FilterState{Search: "inter"}), 1)
	// Terms never span two fields.
	assert.Empty(t, Filter([]models.Product{p}, FilterState{Search: "chikkigokul"}))
}

func TestFilter_CategoryAndBrandSets(t *testing.T) {
	products := []models.Product{
		{Name: "a", Category: "sweets", Brand: "Haldiram"},
		{Name: "b", Category: "snacks", Brand: "Haldiram"},
		{Name: "c", Category: "snacks", Brand: "Bikano"},
		{Name: "d", Category: "groceries", Brand: "Bikano"},
	}

	got := Filter(products, FilterState{Categories: []string{"snacks", "sweets"}})
	assert.Equal(t, []string{"a", "b", "c"}, names(got))

	got = Filter(products, FilterState{Categories: []string{"snacks"}, Brands: []string{"Bikano"}})
	assert.Equal(t, []string{"c"}, names(got))

	assert.Len(t, Filter(products, FilterState{}), 4)
}

func TestFilter_SubsetAndIdempotent(t *testing.T) {
	products := append(tenProducts(), models.Product{Name: "Rice Cake", Category: "snacks"})
	states := []FilterState{
		{},
		{Search: "p"},
		{Price: PriceRange{Min: ptr(20)}},
		{Categories: []string{"snacks"}, Search: "rice"},
		{Price: PriceRange{Min: ptr(30), Max: ptr(70)}, Search: "p"},
	}
	for _, f := range states {
		once := Filter(products, f)
		twice := Filter(once, f)
		assert.Equal(t, once, twice)

		for _, p := range once {
			assert.Contains(t, products, p)
			assert.True(t, f.Price.Contains(p.Price.Or(0)))
			for _, term := range f.SearchTerms() {
				assert.Contains(t, haystack(p), term)
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	products := tenProducts()
	before := append([]models.Product(nil), products...)
	_ = Filter(products, FilterState{Price: PriceRange{Max: ptr(30)}})
	assert.Equal(t, before, products)
}

func TestFilterState_ClearAndIsZero(t *testing.T) {
	f := FilterState{Categories: []string{"x"}, Search: "y", Price: PriceRange{Min: ptr(1)}}
	assert.False(t, f.IsZero())
	assert.True(t, f.Clear().IsZero())
	assert.True(t, FilterState{Search: "   "}.IsZero())
}

func names(ps []models.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
