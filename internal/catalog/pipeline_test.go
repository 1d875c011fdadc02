package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FilterSortPage(t *testing.T) {
	a := NewAssembler("https://cdn.example.com", "/placeholder.png")
	s := NewViewState().
		WithFilter(FilterState{Price: PriceRange{Min: ptr(10), Max: ptr(90)}}).
		WithSort(SortPriceDesc).
		WithPage(2)

	res := a.Run(tenProducts(), s, 3, nil)

	assert.Equal(t, 8, res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.PageSize)
	assert.Equal(t, SortPriceDesc, res.Sort)
	assert.Equal(t, s.Fingerprint(), res.State)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []float64{55, 45, 35}, []float64{res.Items[0].Price, res.Items[1].Price, res.Items[2].Price})
}

func TestRun_NarrowedResultNeverEmptyPage(t *testing.T) {
	a := NewAssembler("", "")
	s := NewViewState().WithPage(4)
	s.Filter = FilterState{Search: "p1"} // bypasses the reset on purpose

	res := a.Run(tenProducts(), s, 9, nil)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p1", res.Items[0].Name)
}

func TestRun_EmptyCatalog(t *testing.T) {
	res := NewAssembler("", "").Run(nil, NewViewState(), 9, nil)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}
