package grid

import (
	"fmt"
	"strconv"
)

// MinRows is the number of rows a rendered page always occupies. Shorter
// pages are padded with empty rows so the table keeps a constant height.
const MinRows = 5

// DefaultPageSize is the initial rows-per-page.
const DefaultPageSize = 5

// DefaultPageSizes are the page-size choices offered when none are given.
var DefaultPageSizes = []int{5, 10, 20}

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	pageSize  int
	pageSizes []int
	minRows   int
}

// WithPageSize sets the initial page size.
func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithPageSizes sets the page-size options offered by the selector.
func WithPageSizes(sizes ...int) Option {
	return func(s *settings) {
		valid := make([]int, 0, len(sizes))
		for _, n := range sizes {
			if n > 0 {
				valid = append(valid, n)
			}
		}
		if len(valid) > 0 {
			s.pageSizes = valid
		}
	}
}

// WithMinRows overrides MinRows.
func WithMinRows(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.minRows = n
		}
	}
}

// Engine derives pages of R and owns the pagination state.
type Engine[R Record] struct {
	columns   []Column
	pageSizes []int
	minRows   int

	page      int
	pageSize  int
	pageCount int

	filters     Filters
	seenFilters bool
}

// New creates an Engine over the given columns.
func New[R Record](columns []Column, opts ...Option) *Engine[R] {
	s := settings{
		pageSize:  DefaultPageSize,
		pageSizes: DefaultPageSizes,
		minRows:   MinRows,
	}
	for _, opt := range opts {
		opt(&s)
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Engine[R]{
		columns:   cols,
		pageSizes: s.pageSizes,
		minRows:   s.minRows,
		page:      1,
		pageSize:  s.pageSize,
	}
}

// Columns returns the column schema.
func (e *Engine[R]) Columns() []Column {
	return e.columns
}

// Page returns the current page number.
func (e *Engine[R]) Page() int {
	return e.page
}

// PageSize returns the rows-per-page.
func (e *Engine[R]) PageSize() int {
	return e.pageSize
}

// PageSizes returns the page-size options.
func (e *Engine[R]) PageSizes() []int {
	return e.pageSizes
}

// PageCount returns the page count of the last derivation.
func (e *Engine[R]) PageCount() int {
	return e.pageCount
}

// SetPageSize changes the rows-per-page and returns to page 1.
func (e *Engine[R]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	e.pageSize = n
	e.page = 1
}

// SetFilters records the caller's filter map. A map that differs from the
// previous one returns the engine to page 1.
func (e *Engine[R]) SetFilters(f Filters) {
	if e.seenFilters && e.filters.Equal(f) {
		return
	}
	if e.seenFilters {
		e.page = 1
	}
	e.filters = f.Active()
	e.seenFilters = true
}

// Prev moves one page back, stopping at page 1.
func (e *Engine[R]) Prev() {
	e.GoTo(e.page - 1)
}

// Next moves one page forward, stopping at the last page.
func (e *Engine[R]) Next() {
	e.GoTo(e.page + 1)
}

// GoTo jumps to page n clamped into [1, max(1, pageCount)].
func (e *Engine[R]) GoTo(n int) {
	e.page = clampPage(n, e.pageCount)
}

func clampPage(n, count int) int {
	return max(1, min(n, max(1, count)))
}

// View is one derived page.
type View[R Record] struct {
	Rows      []R
	Padding   int
	Page      int
	PageCount int
	PageSize  int
	Total     int
}

// HasPrev reports whether Previous is enabled.
func (v View[R]) HasPrev() bool {
	return v.Page > 1
}

// HasNext reports whether Next is enabled.
func (v View[R]) HasNext() bool {
	return v.Page < v.PageCount
}

// Pages lists the page numbers, one button each.
func (v View[R]) Pages() []int {
	pages := make([]int, v.PageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Summary is a short "page x of y" status line.
func (v View[R]) Summary() string {
	return fmt.Sprintf("Page %d of %d (%s)", v.Page, max(1, v.PageCount), pluralRows(v.Total))
}

func pluralRows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return strconv.Itoa(n) + " rows"
}

// View runs the filter → order → paginate pipeline over records.
func (e *Engine[R]) View(records []R, filters Filters, sort *Sort) View[R] {
	e.SetFilters(filters)

	ordered := Order(Filter(records, filters), sort)
	e.pageCount = PageCount(len(ordered), e.pageSize)
	e.page = clampPage(e.page, e.pageCount)

	rows := Paginate(ordered, e.page, e.pageSize)
	return View[R]{
		Rows:      rows,
		Padding:   max(0, e.minRows-len(rows)),
		Page:      e.page,
		PageCount: e.pageCount,
		PageSize:  e.pageSize,
		Total:     len(ordered),
	}
}
