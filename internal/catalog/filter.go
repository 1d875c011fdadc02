package catalog

import (
	"strings"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// PriceRange is an inclusive price interval. A nil bound is open.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price float64) bool {
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// FilterState is the set of constraints a shopper has applied to a listing.
// The zero value matches every product.
type FilterState struct {
	Categories []string   `json:"categories,omitempty"`
	Brands     []string   `json:"brands,omitempty"`
	Price      PriceRange `json:"price"`
	Search     string     `json:"search,omitempty"`
}

// Clear returns the state with every constraint removed.
func (FilterState) Clear() FilterState {
	return FilterState{}
}

// IsZero reports whether no constraint is active.
func (f FilterState) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Brands) == 0 &&
		f.Price.Min == nil && f.Price.Max == nil &&
		strings.TrimSpace(f.Search) == ""
}

// SearchTerms lowercases the search text and splits it on whitespace.
func (f FilterState) SearchTerms() []string {
	return strings.Fields(strings.ToLower(f.Search))
}

// Filter returns the products that satisfy every active constraint, in their
// original order. The input slice is never modified.
func Filter(products []models.Product, f FilterState) []models.Product {
	categories := toSet(f.Categories)
	brands := toSet(f.Brands)
	terms := f.SearchTerms()

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if len(categories) > 0 {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if len(brands) > 0 {
			if _, ok := brands[p.Brand]; !ok {
				continue
			}
		}
		if !f.Price.Contains(p.Price.Or(0)) {
			continue
		}
		if len(terms) > 0 && !matchesAll(haystack(p), terms) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// haystack is the lowercased text a search term may appear in. Fields are
// space separated so a term cannot straddle two of them.
func haystack(p models.Product) string {
	return strings.ToLower(strings.Join([]string{
		p.Name,
		p.Brand,
		p.Category,
		p.Description,
		strings.Join(p.Tags, " "),
	}, " "))
}

func matchesAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
