package dto

// Pagination carries the metadata attached to every list or search
// response. Pages are 1-based.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the envelope returned by list and search endpoints.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination derives the metadata for a result set. totalPages is
// ceil(total/limit) and never drops below 1.
func NewPagination(page, limit, total int) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// NewPage bundles items with their derived pagination metadata.
func NewPage[T any](items []T, page, limit, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Data: items, Pagination: NewPagination(page, limit, total)}
}
