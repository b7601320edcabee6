package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gitbrowse/internal/domain"
)

// Sort directions accepted in sort expressions
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

var (
	// ErrInvalidPage is returned for inconsistent paging parameters
	ErrInvalidPage = errors.New("invalid page request")
	// ErrInvalidSort is returned for malformed sort expressions
	ErrInvalidSort = errors.New("invalid sort expression")
)

// PageRequest selects one window of the listing. Page-based (Page, PageSize)
// and offset-based (Offset, Limit) modes are mutually exclusive; Page is
// 1-based. A zero Sort uses the service default.
type PageRequest struct {
	Sort     domain.SortState
	Page     int
	PageSize int
	Offset   int
	Limit    int
}

// PageMeta describes where a window sits in the full listing
type PageMeta struct {
	Offset      int  `json:"offset"`
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// Page is one window of the sorted listing
type Page struct {
	Items []domain.Repository `json:"items"`
	Sort  domain.SortState    `json:"sort"`
	Meta  PageMeta            `json:"meta"`
}

// ParseSort parses "field" or "field:order". An empty expression returns
// def. A field alone sorts ascending. Unknown fields are passed through so
// the listing can fall back to its default order.
func ParseSort(expr string, def domain.SortState) (domain.SortState, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return def, nil
	}

	field, order, hasOrder := strings.Cut(expr, ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return domain.SortState{}, fmt.Errorf("%w: empty field in %q", ErrInvalidSort, expr)
	}

	state := domain.SortState{Key: domain.SortKey(field), Ascending: true}
	if key, err := domain.ParseSortKey(field); err == nil {
		state.Key = key
	}

	if hasOrder {
		switch strings.ToLower(strings.TrimSpace(order)) {
		case SortOrderAsc:
			state.Ascending = true
		case SortOrderDesc:
			state.Ascending = false
		default:
			return domain.SortState{}, fmt.Errorf("%w: order must be %q or %q, got %q",
				ErrInvalidSort, SortOrderAsc, SortOrderDesc, order)
		}
	}

	return state, nil
}

// window resolves a request to an offset and count. Negative offsets and
// limits are left for the provider to reject.
func (r PageRequest) window(defaultSize, maxSize int) (offset, count int, err error) {
	if r.Page < 0 || r.PageSize < 0 {
		return 0, 0, fmt.Errorf("%w: page and page_size must not be negative", ErrInvalidPage)
	}
	if r.Page > 0 && (r.Offset != 0 || r.Limit != 0) {
		return 0, 0, fmt.Errorf("%w: page and offset/limit are mutually exclusive", ErrInvalidPage)
	}

	if r.Page > 0 {
		size := r.PageSize
		if size == 0 {
			size = defaultSize
		}
		size = min(size, maxSize)
		if r.Page-1 > math.MaxInt/size {
			return 0, 0, fmt.Errorf("%w: page %d is out of range", ErrInvalidPage, r.Page)
		}
		return (r.Page - 1) * size, size, nil
	}

	if r.PageSize > 0 {
		return 0, 0, fmt.Errorf("%w: page_size requires page", ErrInvalidPage)
	}

	limit := r.Limit
	if limit == 0 {
		limit = defaultSize
	}
	return r.Offset, min(limit, maxSize), nil
}

// newPageMeta computes paging metadata for a window of count items at offset
func newPageMeta(offset, count, total int) PageMeta {
	meta := PageMeta{
		Offset:      offset,
		CurrentPage: 1,
		PageSize:    count,
		TotalItems:  total,
	}

	if count > 0 {
		meta.CurrentPage = offset/count + 1
		meta.TotalPages = (total + count - 1) / count
	}

	meta.HasPrevious = offset > 0
	meta.HasNext = offset < total && count < total-offset
	return meta
}
