package utils

import "strconv"

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

type Page struct {
	Number     int
	TotalPages int
	Offset     int
	Limit      int
}

// Paginate computes the page window for a feed of total items. The requested
// page is clamped into [1, totalPages]: out-of-range requests land on the
// nearest valid page instead of erroring, and an empty feed is page 1 of 1.
func Paginate(total, requested int) Page {
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		Offset:     (number - 1) * PageSize,
		Limit:      PageSize,
	}
}

// ParsePage reads a raw ?page= query value. Missing, non-numeric, or
// non-positive input means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
