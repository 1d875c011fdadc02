package catalog

import "github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"

// Result is one rendered page of a listing.
type Result struct {
	Items      []ProductView `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalItems int           `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
	Sort       SortKey       `json:"sort"`
	State      string        `json:"state"`
}

// Run executes filter, sort, paginate and assemble over a catalog snapshot.
// Nothing is cached between runs; every input change recomputes from the
// snapshot. The requested page is clamped into range.
func (a *Assembler) Run(products []models.Product, s ViewState, pageSize int, m Membership) Result {
	filtered := Filter(products, s.Filter)
	ordered := Sort(filtered, s.sortKey())
	page := ClampPage(s.Page, len(ordered), pageSize)

	return Result{
		Items:      a.Assemble(Paginate(ordered, page, pageSize), m),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(ordered),
		TotalPages: TotalPages(len(ordered), pageSize),
		Sort:       s.sortKey(),
		State:      s.Fingerprint(),
	}
}
