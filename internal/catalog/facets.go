package catalog

import (
	"sort"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// Facets summarises an unfiltered catalog for the filter controls.
type Facets struct {
	Categories []string     `json:"categories"`
	Brands     []string     `json:"brands"`
	PriceRange PriceBounds  `json:"priceRange"`
	Stock      StockSummary `json:"stock"`
}

// PriceBounds is the cheapest and dearest price in the catalog.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// StockSummary counts products by availability.
type StockSummary struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// BuildFacets collects distinct non-empty categories and brands (sorted),
// the price bounds and the stock counts of products.
func BuildFacets(products []models.Product) Facets {
	f := Facets{Categories: []string{}, Brands: []string{}}
	categories := map[string]struct{}{}
	brands := map[string]struct{}{}

	for i, p := range products {
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		price := p.Price.Or(0)
		if i == 0 || price < f.PriceRange.Min {
			f.PriceRange.Min = price
		}
		if i == 0 || price > f.PriceRange.Max {
			f.PriceRange.Max = price
		}
		if p.Piece.Or(0) > 0 {
			f.Stock.InStock++
		} else {
			f.Stock.OutOfStock++
		}
	}

	for c := range categories {
		f.Categories = append(f.Categories, c)
	}
	for b := range brands {
		f.Brands = append(f.Brands, b)
	}
	sort.Strings(f.Categories)
	sort.Strings(f.Brands)
	return f
}
