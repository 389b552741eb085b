// Package query holds the primitives shared by every record-kind service:
// pagination, parameter validation, sort ordering and the guarded ratio
// helpers used by all aggregations.
package query

// Page is one window of a filtered and sorted sequence.
type Page[T any] struct {
	Items      []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into the requested 1-indexed window. A page past the
// end is not an error: it yields an empty item list with accurate totals.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	window := items[start:end]
	if window == nil {
		// Keep JSON output as [] rather than null.
		window = []T{}
	}

	return Page[T]{
		Items:      window,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
