package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// SortKey selects the ordering applied to a filtered listing.
type SortKey string

const (
	SortDefault    SortKey = "default"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNameAsc    SortKey = "name-asc"
)

// SortKeys lists every supported key in display order.
var SortKeys = []SortKey{SortDefault, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNameAsc}

// ParseSortKey maps user input to a SortKey. A few spellings used by older
// pages are accepted; anything unknown is SortDefault.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price-asc", "price_asc", "price-low-high", "low-high":
		return SortPriceAsc
	case "price-desc", "price_desc", "price-high-low", "high-low":
		return SortPriceDesc
	case "rating-desc", "rating_desc", "rating":
		return SortRatingDesc
	case "name-asc", "name_asc", "name", "a-z":
		return SortNameAsc
	default:
		return SortDefault
	}
}

// Sort returns a new slice ordered by key. Ties keep their input order.
// Missing prices and ratings count as 0 and a missing name as "".
func Sort(products []models.Product, key SortKey) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Or(0) < out[j].Price.Or(0)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Or(0) > out[j].Price.Or(0)
		})
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating.Or(0) > out[j].Rating.Or(0)
		})
	case SortNameAsc:
		// Collators keep internal buffers and are not safe for concurrent use.
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}
