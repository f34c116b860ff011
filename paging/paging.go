// Package paging windows an ordered result list into fixed-size pages
// with clamped navigation.
package paging

// PageSize is the number of tracks shown per page.
const PageSize = 5

// LastPageIndex returns the zero-based index of the last page for a list
// of n items. An empty list still has page 0.
func LastPageIndex(n int) int {
	if n <= 0 {
		return 0
	}
	return (n+PageSize-1)/PageSize - 1
}

// Next advances one page, clamped to the last page of an n-item list.
func Next(page, n int) int {
	if page+1 > LastPageIndex(n) {
		return LastPageIndex(n)
	}
	return page + 1
}

// Prev goes back one page, clamped to page 0.
func Prev(page int) int {
	if page <= 0 {
		return 0
	}
	return page - 1
}

// Window returns the [start, end) slice bounds of the given page in an
// n-item list.
func Window(page, n int) (start, end int) {
	start = page * PageSize
	if start > n {
		start = n
	}
	end = start + PageSize
	if end > n {
		end = n
	}
	return start, end
}
