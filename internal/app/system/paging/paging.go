// internal/app/system/paging/paging.go
package paging

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not send one.
const DefaultLimit = 10

// MaxLimit caps the page size a caller may request.
const MaxLimit = 100

// Window is an offset/limit pair for a 1-based page.
type Window struct {
	Page  int
	Limit int
}

// Skip returns how many matching rows precede this page.
func (w Window) Skip() int64 { return int64(w.Page-1) * int64(w.Limit) }

// Limit64 is Limit as int64 for options.Find().SetLimit.
func (w Window) Limit64() int64 { return int64(w.Limit) }

// Parse builds a Window from raw page/limit strings.
// Missing, non-numeric or non-positive values fall back to page 1 and
// DefaultLimit; limits above max are clamped to max. Pages are clamped so
// Skip cannot overflow; such a page is simply past the last row.
func Parse(page, limit string, max int) Window {
	if max <= 0 {
		max = MaxLimit
	}
	w := Window{Page: 1, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		w.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		w.Limit = n
	}
	if w.Limit > max {
		w.Limit = max
	}
	if last := math.MaxInt64 / int64(w.Limit); int64(w.Page) > last {
		w.Page = int(last)
	}
	return w
}

// FromRequest reads the "page" and "limit" query parameters.
func FromRequest(r *http.Request, max int) Window {
	return Parse(query.Get(r, "page"), query.Get(r, "limit"), max)
}

// TotalPages returns ceil(total/limit), and 0 for an empty result.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Envelope is the list response shape returned by discovery endpoints.
type Envelope[T any] struct {
	Success     bool  `json:"success"`
	Count       int   `json:"count"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Campaigns   []T   `json:"campaigns"`
}

// NewEnvelope wraps one page of rows. A nil page is rendered as [].
func NewEnvelope[T any](rows []T, total int64, w Window) Envelope[T] {
	if rows == nil {
		rows = []T{}
	}
	return Envelope[T]{
		Success:     true,
		Count:       len(rows),
		Total:       total,
		TotalPages:  TotalPages(total, w.Limit),
		CurrentPage: w.Page,
		Campaigns:   rows,
	}
}
