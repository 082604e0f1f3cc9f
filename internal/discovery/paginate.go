package discovery

import "pet_discovery/internal/models"

// Page is one slice of a filtered list.
type Page struct {
	Number     int
	TotalPages int
	Items      []models.Company
}

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage moves requested into [1, totalPages].
func ClampPage(requested, totalPages int) int {
	if requested < 1 {
		requested = 1
	}
	if requested > totalPages {
		return totalPages
	}
	return requested
}

// Paginate returns the clamped page of filtered. Out-of-range requests are clamped, never rejected.
// A pageSize below 1 is treated as 1.
func Paginate(filtered []models.Company, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(filtered), pageSize)
	n := ClampPage(requested, total)

	start := (n - 1) * pageSize
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	if start > end {
		start = end
	}
	return Page{Number: n, TotalPages: total, Items: filtered[start:end:end]}
}
