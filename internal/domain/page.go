package domain

// Page is a bounded window over an ordered collection.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Paginate returns page number page (1-based) of items, limit items per page.
// The items slice is copied; source order is preserved.
func Paginate[T any](items []T, page, limit int) (Page[T], error) {
	if err := ValidatePageBounds(page, limit); err != nil {
		return Page[T]{}, err
	}

	window := []T{}
	if start, ok := PageOffset(len(items), page, limit); ok {
		n := min(limit, len(items)-start)
		window = append(window, items[start:start+n]...)
	}
	return NewPage(window, len(items), page, limit)
}

// PageOffset returns the index of the first item of page in a collection of
// total items. ok is false when the page starts at or past the end. Valid
// bounds never overflow.
func PageOffset(total, page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 || page > totalPages(total, limit) {
		return 0, false
	}
	// page-1 < totalPages, so the product is below total.
	return (page - 1) * limit, true
}

func totalPages(total, limit int) int {
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return n
}

// NewPage builds a Page from an already-sliced window and the size of the
// full collection.
func NewPage[T any](window []T, total, page, limit int) (Page[T], error) {
	if err := ValidatePageBounds(page, limit); err != nil {
		return Page[T]{}, err
	}
	if window == nil {
		window = []T{}
	}

	pages := totalPages(total, limit)
	return Page[T]{
		Items:       window,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrevious: page > 1,
	}, nil
}

// ValidatePageBounds rejects page or limit values below 1 with a BadRequest error.
func ValidatePageBounds(page, limit int) error {
	if page <= 0 {
		return BadRequest("page must be greater than or equal to 1")
	}
	if limit <= 0 {
		return BadRequest("limit must be greater than or equal to 1")
	}
	return nil
}
