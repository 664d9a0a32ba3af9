package models

// Page is one zero-based page of a listing.
type Page[T any] struct {
	Page         int
	PageSize     int
	TotalContent int64
	TotalPages   int
	Items        []T
}

// NewPage computes TotalPages from total and size. A non-positive size yields
// zero pages.
func NewPage[T any](items []T, page, size int, total int64) *Page[T] {
	var pages int
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Page:         page,
		PageSize:     size,
		TotalContent: total,
		TotalPages:   pages,
		Items:        items,
	}
}
