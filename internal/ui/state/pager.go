package state

// PageSize is the fixed number of catalog entries per page.
const PageSize = 12

// Pager tracks the current page of the browse list.
type Pager struct {
	size int
	page int
}

// NewPager starts on page 1 with the fixed page size.
func NewPager() Pager {
	return Pager{size: PageSize, page: 1}
}

// Page returns the 1-based current page.
func (p Pager) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// Size returns the page size.
func (p Pager) Size() int {
	if p.size <= 0 {
		return PageSize
	}
	return p.size
}

// TotalPages returns ceil(total/size).
func (p Pager) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	size := p.Size()
	return (total + size - 1) / size
}

// SetPage moves to page n when 1 <= n <= TotalPages(total). Out of range
// requests leave the pager untouched and report false.
func (p *Pager) SetPage(n, total int) bool {
	if n < 1 || n > p.TotalPages(total) {
		return false
	}
	p.page = n
	return true
}

// Reset returns to page 1 and reports whether the page changed.
func (p *Pager) Reset() bool {
	changed := p.Page() != 1
	p.page = 1
	return changed
}

// Clamp pulls the page back inside a list that shrank underneath it.
func (p *Pager) Clamp(total int) {
	pages := p.TotalPages(total)
	if pages == 0 {
		p.page = 1
		return
	}
	if p.Page() > pages {
		p.page = pages
	}
}

// Bounds returns the half-open item range of the current page.
func (p Pager) Bounds(total int) (start, end int) {
	start = (p.Page() - 1) * p.Size()
	end = start + p.Size()
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// PageOf returns the visible slice of items for p.
func PageOf[T any](p Pager, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}

// Marker is one slot of the page-number strip.
type Marker struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// Markers lays out the page strip: the first and last pages, the current
// page and its direct neighbours, with a single ellipsis standing in for
// each collapsed gap.
func (p Pager) Markers(total int) []Marker {
	pages := p.TotalPages(total)
	if pages == 0 {
		return nil
	}
	current := p.Page()
	out := make([]Marker, 0, 7)
	for n := 1; n <= pages; n++ {
		switch {
		case n == 1 || n == pages || (n >= current-1 && n <= current+1):
			out = append(out, Marker{Page: n, Current: n == current})
		case n == current-2 || n == current+2:
			out = append(out, Marker{Page: n, Ellipsis: true})
		}
	}
	return out
}
