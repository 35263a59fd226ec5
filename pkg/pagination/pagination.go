// Package pagination slices result sets into fixed-size pages with
// forgiving page-number handling: anything that is not a positive integer
// falls back to the first page, anything past the end falls back to the
// last page. Callers never see an out-of-range error.
package pagination

import "strconv"

type Paginator struct {
	count   int
	perPage int
}

type Page struct {
	Number   int
	Offset   int
	Limit    int
	NumPages int
	Count    int
}

func New(count, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{count: count, perPage: perPage}
}

func (p *Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.perPage - 1) / p.perPage
}

// Page resolves a raw page parameter. Non-integer input clamps to page 1,
// a number past the last page clamps to the last page.
func (p *Paginator) Page(raw string) Page {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	last := p.NumPages()
	if number > last {
		number = last
	}
	return Page{
		Number:   number,
		Offset:   (number - 1) * p.perPage,
		Limit:    p.perPage,
		NumPages: last,
		Count:    p.count,
	}
}

func (pg Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

func (pg Page) HasPrev() bool {
	return pg.Number > 1
}

// rangeWindow bounds how many page links Range emits on either side of
// the current page.
const rangeWindow = 4

// Range lists page numbers for the pagination controls, windowed around
// the current page so a huge result set does not render a link per page.
func (pg Page) Range() []int {
	first := pg.Number - rangeWindow
	if first < 1 {
		first = 1
	}
	last := pg.Number + rangeWindow
	if last > pg.NumPages {
		last = pg.NumPages
	}

	pages := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		pages = append(pages, n)
	}
	return pages
}
