package catalog

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// ViewState is everything a shopper controls on a listing page. Changing the
// filter or the sort key always sends the shopper back to page 1, so a
// narrowed result can never land on a page that no longer exists.
type ViewState struct {
	Filter FilterState
	Sort   SortKey
	Page   int
}

// NewViewState returns the initial state: no filter, default order, page 1.
func NewViewState() ViewState {
	return ViewState{Sort: SortDefault, Page: 1}
}

// WithFilter replaces the filter and resets the page.
func (s ViewState) WithFilter(f FilterState) ViewState {
	s.Filter = f
	s.Page = 1
	return s
}

// WithSort replaces the sort key and resets the page.
func (s ViewState) WithSort(k SortKey) ViewState {
	s.Sort = k
	s.Page = 1
	return s
}

// WithPage moves to another page without touching filter or sort.
func (s ViewState) WithPage(page int) ViewState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// ClearAll drops every filter and resets the page. The sort key is kept.
func (s ViewState) ClearAll() ViewState {
	return s.WithFilter(s.Filter.Clear())
}

// Fingerprint identifies the filter and sort part of the state. Clients echo
// it back with the next request; a mismatch means the inputs changed and the
// page must restart at 1 (see Reconcile).
func (s ViewState) Fingerprint() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "c=%s|b=%s|min=%s|max=%s|q=%s|s=%s",
		canonicalSet(s.Filter.Categories),
		canonicalSet(s.Filter.Brands),
		formatBound(s.Filter.Price.Min),
		formatBound(s.Filter.Price.Max),
		strings.Join(s.Filter.SearchTerms(), " "),
		s.sortKey(),
	)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Reconcile applies the page reset rule for stateless callers: when previous
// is non-empty and differs from the current fingerprint, the page goes back
// to 1.
func (s ViewState) Reconcile(previous string) ViewState {
	if previous != "" && previous != s.Fingerprint() {
		s.Page = 1
	}
	return s
}

func (s ViewState) sortKey() SortKey {
	if s.Sort == "" {
		return SortDefault
	}
	return s.Sort
}

func canonicalSet(values []string) string {
	cp := append([]string(nil), values...)
	sort.Strings(cp)
	return strings.Join(cp, ",")
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
