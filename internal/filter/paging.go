package filter

import (
	"cmp"
	"sort"
)

// Direction selects sort order. Anything other than Ascending sorts
// descending.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortBy returns a copy of records ordered by the extracted key. The
// sort is stable: records with equal keys keep their input order.
func SortBy[T any, K cmp.Ordered](records []T, key func(T) K, dir Direction) []T {
	out := make([]T, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Ascending {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})
	return out
}

// Page is one slice of a paginated collection plus its bookkeeping.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalPages  int `json:"total_pages"`
	Total       int `json:"total"`
}

// Paginate slices records into the 1-indexed page of size perPage.
// An out-of-range page yields an empty slice, never an error; the
// bookkeeping fields still reflect the full collection.
func Paginate[T any](records []T, page, perPage int) Page[T] {
	total := len(records)
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	p := Page[T]{
		Data:        []T{},
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		Total:       total,
	}

	if perPage <= 0 || page < 1 {
		return p
	}
	start := (page - 1) * perPage
	if start >= total {
		return p
	}
	end := start + perPage
	if end > total {
		end = total
	}
	p.Data = records[start:end]
	return p
}
