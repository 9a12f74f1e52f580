package model

import "math"

// SortDirection is the ordering of a paginated listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageRequest describes a zero-based page of a sorted listing.
type PageRequest struct {
	PageNo   int
	PageSize int
	SortBy   string
	SortDir  SortDirection
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// rather than overflowing, so a huge page number reads as past the end.
func (p PageRequest) Offset() int {
	if p.PageNo <= 0 || p.PageSize <= 0 {
		return 0
	}
	if p.PageNo > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return p.PageNo * p.PageSize
}

// Page is one page of a listing with its totals.
type Page[T any] struct {
	Content       []T
	PageNo        int
	PageSize      int
	TotalElements int64
	TotalPages    int
	Last          bool
}

// NewPage computes page totals for the given request.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	pages := 0
	if req.PageSize > 0 {
		pages = int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	}
	return Page[T]{
		Content:       content,
		PageNo:        req.PageNo,
		PageSize:      req.PageSize,
		TotalElements: total,
		TotalPages:    pages,
		Last:          req.PageNo >= pages-1,
	}
}
