// Package listing turns fetched collections into filtered, paginated and
// cross-referenced pages. Every function here is a pure projection: the same
// inputs always give the same page.
package listing

import "strings"

// Display sentinels for foreign keys with no matching record.
const (
	UnknownName    = "Unknown"
	Unassigned     = "Unassigned"
	UnknownRole    = "Unknown Role"
	UnknownTask    = "Unknown Task"
	UnknownProject = "Unknown Project"
	UnknownManager = "Unknown Manager"
)

// Page is one window of a resolved list.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageLimit  int `json:"pageLimit"`
	TotalPages int `json:"totalPages"`
}

// TotalPages is ceil(total/limit), and 0 when there is nothing to show.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Clamp brings page back into [1, totalPages]. Pages are 1-based; an empty
// list stays on page 1.
func Clamp(page, totalPages int) int {
	if page < 1 || totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate keeps the items accepted by keep, windows them to
// [(page-1)*limit, page*limit) and resolves each windowed item.
// A page outside the range yields empty Data; callers clamp with Clamp.
func Paginate[T, R any](items []T, keep func(T) bool, page, limit int, resolve func(T) R) Page[R] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			filtered = append(filtered, item)
		}
	}

	result := Page[R]{
		Data:       []R{},
		Total:      len(filtered),
		Page:       page,
		PageLimit:  limit,
		TotalPages: TotalPages(len(filtered), limit),
	}

	start := (page - 1) * limit
	if start >= len(filtered) {
		return result
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	for _, item := range filtered[start:end] {
		result.Data = append(result.Data, resolve(item))
	}
	return result
}

// FromServer resolves a page the backend already windowed. total is the
// backend's count; keep still drops records outside the caller's company.
func FromServer[T, R any](data []T, total, page, limit int, keep func(T) bool, resolve func(T) R) Page[R] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	result := Page[R]{
		Data:       []R{},
		Total:      total,
		Page:       page,
		PageLimit:  limit,
		TotalPages: TotalPages(total, limit),
	}
	for _, item := range data {
		if keep == nil || keep(item) {
			result.Data = append(result.Data, resolve(item))
		}
	}
	return result
}

// All keeps and resolves every item, unpaginated.
func All[T, R any](items []T, keep func(T) bool, resolve func(T) R) []R {
	out := []R{}
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, resolve(item))
		}
	}
	return out
}

// ContainsFold is case-insensitive substring containment. An empty needle matches.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// EqualFold matches a whole value ignoring case. An empty want matches.
func EqualFold(got, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(strings.TrimSpace(got), want)
}

// MatchID is exact identity match. A zero want matches.
func MatchID(got, want int64) bool {
	return want == 0 || got == want
}

// Index maps an identity to a record.
type Index[K comparable, V any] map[K]V

// IndexBy builds an index over items, keeping the first record per key.
func IndexBy[K comparable, V any](items []V, key func(V) K) Index[K, V] {
	idx := make(Index[K, V], len(items))
	for _, item := range items {
		k := key(item)
		if _, seen := idx[k]; !seen {
			idx[k] = item
		}
	}
	return idx
}

// Name looks up id and returns its display name, or fallback when missing.
func (idx Index[K, V]) Name(id K, name func(V) string, fallback string) string {
	if v, ok := idx[id]; ok {
		return name(v)
	}
	return fallback
}
