package pagination

import "math"

// CalculateOffset calculates the OFFSET / skip value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * limit
//
// Examples:
//   - Page 1, Limit 10 -> Offset 0
//   - Page 2, Limit 10 -> Offset 10
//   - Page 3, Limit 25 -> Offset 50
//
// The result saturates at math.MaxInt instead of wrapping.
func CalculateOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division to ensure all items are included. An empty collection has zero pages.
//
// Examples:
//   - Total 0, Limit 10 -> 0 pages
//   - Total 10, Limit 10 -> 1 page
//   - Total 11, Limit 10 -> 2 pages
//   - Total 25, Limit 10 -> 3 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	// Ceiling division: (total + limit - 1) / limit
	return int((total + int64(limit) - 1) / int64(limit))
}

// HasNextPage reports whether items exist after the current page.
func HasNextPage(page, limit int, total int64) bool {
	if limit < 1 {
		return false
	}
	return int64(CalculateOffset(page, limit)) < total-int64(limit)
}

// HasPreviousPage reports whether the current page is past the first.
func HasPreviousPage(page int) bool {
	return page > 1
}
