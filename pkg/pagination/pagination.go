// Package pagination slices a fixed collection into pages of equal size.
package pagination

// DefaultPageSize is the number of items per page of the sold items grid.
const DefaultPageSize = 9

// Paginator splits total items into pages of size items.
type Paginator struct {
	total int
	size  int
}

// New returns a Paginator. A non-positive size falls back to DefaultPageSize.
func New(total, size int) Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Paginator{total: max(total, 0), size: size}
}

// PageCount is ceil(total/size), and at least 1 so an empty collection still
// has a page to show.
func (p Paginator) PageCount() int {
	return max((p.total+p.size-1)/p.size, 1)
}

// Page describes one page. Items with index in [Start, End) are visible.
type Page struct {
	Number    int
	Start     int
	End       int
	PageCount int
	HasPrev   bool
	HasNext   bool
}

// Page returns page n, clamped to [1, PageCount].
func (p Paginator) Page(n int) Page {
	count := p.PageCount()
	n = min(max(n, 1), count)
	start := min((n-1)*p.size, p.total)
	return Page{
		Number:    n,
		Start:     start,
		End:       min(n*p.size, p.total),
		PageCount: count,
		HasPrev:   n > 1,
		HasNext:   n < count,
	}
}

// Visible reports whether item i is on the page.
func (pg Page) Visible(i int) bool {
	return i >= pg.Start && i < pg.End
}

// Prev returns the previous page number, or the current one on the first page.
func (pg Page) Prev() int {
	if pg.HasPrev {
		return pg.Number - 1
	}
	return pg.Number
}

// Next returns the next page number, or the current one on the last page.
func (pg Page) Next() int {
	if pg.HasNext {
		return pg.Number + 1
	}
	return pg.Number
}

// Numbers lists every page number for rendering page links.
func (pg Page) Numbers() []int {
	out := make([]int, pg.PageCount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Slice returns the items visible on pg.
func Slice[T any](items []T, pg Page) []T {
	start := min(pg.Start, len(items))
	end := min(pg.End, len(items))
	return items[start:end]
}
