// Package paging computes menu page windows. Pure functions only; the
// page index itself lives in the session.
package paging

// ItemsPerPage is the fixed menu page size.
const ItemsPerPage = 10

// PageWindow describes one visible slice of a list plus the navigation
// actions available from it.
type PageWindow struct {
	Start      int // inclusive
	End        int // exclusive
	PageIndex  int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Page computes the window for pageIndex over a list of total items. An
// empty list yields a single page with zero rows and no navigation.
func Page(total, pageIndex, pageSize int) PageWindow {
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex > totalPages-1 {
		pageIndex = totalPages - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageWindow{
		Start:      start,
		End:        end,
		PageIndex:  pageIndex,
		TotalPages: totalPages,
		HasPrev:    pageIndex > 0,
		HasNext:    pageIndex < totalPages-1,
	}
}

type Direction int

const (
	Prev Direction = iota
	Next
)

// Advance moves the page index one step and clamps at the boundaries.
// Prev at page 0 and Next at the last page return the index unchanged: a
// stale button pressed twice is a tolerated dead transition, not an error.
func Advance(pageIndex, totalPages int, dir Direction) int {
	switch dir {
	case Prev:
		if pageIndex > 0 {
			return pageIndex - 1
		}
	case Next:
		if pageIndex < totalPages-1 {
			return pageIndex + 1
		}
	}
	return pageIndex
}
