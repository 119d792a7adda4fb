package repositories

import "github.com/umanari145/blog-backend/internal/query"

// Page is the list envelope returned by paginated endpoints
type Page[T any] struct {
	Items           []T   `json:"items"`
	TotalItemsCount int64 `json:"total_items_count"`
	TotalPages      int64 `json:"total_pages"`
	CurrentPage     int   `json:"current_page"`
	PerOnePage      int   `json:"per_one_page"`
}

// NewPage wraps one page of items with the totals derived from count.
func NewPage[T any](items []T, count int64, currentPage int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:           items,
		TotalItemsCount: count,
		TotalPages:      query.TotalPages(count),
		CurrentPage:     currentPage,
		PerOnePage:      query.PageSize,
	}
}
