package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getmockd/roster/pkg/grid"
	"github.com/getmockd/roster/pkg/popover"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/viewstate"
)

const (
	cellGap      = "  "
	maxCellWidth = 28
	actionsTitle = "Actions"
)

// fetchFunc loads the full record set of a section.
type fetchFunc func(ctx context.Context) ([]student.Student, error)

// section is one data grid on a page, together with its popovers and the
// keyboard focus inside it.
type section struct {
	id       string
	title    string
	view     viewstate.View
	state    *viewstate.Manager
	engine   *grid.Engine[student.Student]
	menus    []*grid.ColumnMenu
	sizes    *grid.PageSizeSelector
	handlers grid.Handlers[student.Student]
	fetch    fetchFunc

	records []student.Student
	loading bool
	loaded  bool

	col      int
	row      int
	menuItem int
	sizeItem int
	filter   textinput.Model

	// Absolute regions from the last frame, read by the popover hub.
	menuRegions []popover.Rect
	sizeRegion  popover.Rect
}

type sectionConfig struct {
	id        string
	title     string
	view      viewstate.View
	columns   []grid.Column
	state     *viewstate.Manager
	fetch     fetchFunc
	onEdit    func(student.Student)
	pageSize  int
	pageSizes []int
}

func newSection(cfg sectionConfig) *section {
	s := &section{
		id:     cfg.id,
		title:  cfg.title,
		view:   cfg.view,
		state:  cfg.state,
		fetch:  cfg.fetch,
		filter: textinput.New(),
		engine: grid.New[student.Student](cfg.columns,
			grid.WithPageSize(cfg.pageSize),
			grid.WithPageSizes(cfg.pageSizes...),
		),
	}
	s.filter.Prompt = "› "
	s.filter.CharLimit = 64

	intents := cfg.state.Intents(cfg.view)
	s.handlers = grid.Handlers[student.Student]{Intents: intents, OnEdit: cfg.onEdit}
	for _, c := range s.engine.Columns() {
		s.menus = append(s.menus, grid.NewColumnMenu(c, intents))
	}
	s.menuRegions = make([]popover.Rect, len(s.menus))
	s.sizes = grid.NewPageSizeSelector(s.engine.PageSizes(), s.engine.SetPageSize)
	return s
}

// mount registers the section's popovers with the outside-click hub.
func (s *section) mount(hub *popover.Hub) {
	for i, m := range s.menus {
		m.Mount(hub, func() popover.Rect { return s.menuRegions[i] })
	}
	s.sizes.Mount(hub, func() popover.Rect { return s.sizeRegion })
}

func (s *section) unmount() {
	for _, m := range s.menus {
		m.Unmount()
		m.Close()
	}
	s.sizes.Unmount()
	s.sizes.Close()
	s.filter.Blur()
}

func (s *section) derive() grid.View[student.Student] {
	f := s.state.Filters(s.view)
	return s.engine.View(s.records, f.Filters(), f.SortConfig())
}

// openMenu returns the index of the open column menu, or -1.
func (s *section) openMenu() int {
	for i, m := range s.menus {
		if m.IsOpen() {
			return i
		}
	}
	return -1
}

// popoverOpen reports whether keystrokes belong to a popover.
func (s *section) popoverOpen() bool {
	return s.openMenu() >= 0 || s.sizes.IsOpen()
}

func (s *section) menuItems(i int) []grid.MenuItem {
	f := s.state.Filters(s.view)
	return s.menus[i].Items(f.SortConfig(), f.Dynamic[s.menus[i].Column().Key])
}

func (s *section) toggleMenu(i int) tea.Cmd {
	if i < 0 || i >= len(s.menus) {
		return nil
	}
	wasOpen := s.menus[i].IsOpen()
	for _, m := range s.menus {
		m.Close()
	}
	s.sizes.Close()
	s.filter.Blur()
	if wasOpen {
		return nil
	}
	s.col = i
	s.menus[i].Toggle()
	s.menuItem = 0
	s.filter.SetValue(s.state.Filters(s.view).Dynamic[s.menus[i].Column().Key])
	s.filter.Placeholder = fmt.Sprintf("Filter %s...", s.menus[i].Column().Header)
	return s.syncFilterFocus(i)
}

// syncFilterFocus focuses the text input iff the cursor is on it.
func (s *section) syncFilterFocus(i int) tea.Cmd {
	items := s.menuItems(i)
	if s.menuItem >= 0 && s.menuItem < len(items) && items[s.menuItem].Kind == grid.ItemFilterInput {
		return s.filter.Focus()
	}
	s.filter.Blur()
	return nil
}

func (s *section) activate(i int, kind grid.MenuItemKind) tea.Cmd {
	if kind == grid.ItemFilterInput {
		items := s.menuItems(i)
		for k, it := range items {
			if it.Kind == grid.ItemFilterInput {
				s.menuItem = k
			}
		}
		return s.syncFilterFocus(i)
	}
	s.menus[i].Activate(kind)
	s.filter.Blur()
	return nil
}

func (s *section) toggleSizes() {
	for _, m := range s.menus {
		m.Close()
	}
	s.filter.Blur()
	s.sizes.Toggle()
	for k, o := range s.sizes.Options() {
		if o.Value == s.engine.PageSize() {
			s.sizeItem = k
		}
	}
}

func (s *section) selectedRecord() (student.Student, bool) {
	v := s.derive()
	if s.row < 0 || s.row >= len(v.Rows) {
		return student.Student{}, false
	}
	return v.Rows[s.row], true
}

// handleKey processes a key while the section has focus. It reports false
// for keys the page or the app should handle instead.
func (s *section) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if i := s.openMenu(); i >= 0 {
		return true, s.handleMenuKey(i, msg)
	}
	if s.sizes.IsOpen() {
		s.handleSizeKey(msg)
		return true, nil
	}

	cols := len(s.engine.Columns())
	switch msg.String() {
	case "left", "h":
		s.col = max(0, s.col-1)
	case "right", "l":
		s.col = min(cols-1, s.col+1)
	case "up", "k":
		s.row = max(0, s.row-1)
	case "down", "j":
		s.row = min(max(0, len(s.derive().Rows)-1), s.row+1)
	case "enter", "m":
		return true, s.toggleMenu(s.col)
	case "[", "pgup":
		s.engine.Prev()
		s.row = 0
	case "]", "pgdown":
		s.engine.Next()
		s.row = 0
	case "p":
		s.toggleSizes()
	case "e":
		if rec, ok := s.selectedRecord(); ok {
			return s.handlers.Invoke(grid.ActionEdit, rec), nil
		}
		return false, nil
	default:
		return false, nil
	}
	return true, nil
}

func (s *section) handleMenuKey(i int, msg tea.KeyMsg) tea.Cmd {
	items := s.menuItems(i)
	switch msg.String() {
	case "esc":
		s.menus[i].Close()
		s.filter.Blur()
		return nil
	case "up", "shift+tab":
		s.menuItem = max(0, s.menuItem-1)
		return s.syncFilterFocus(i)
	case "down", "tab":
		s.menuItem = min(len(items)-1, s.menuItem+1)
		return s.syncFilterFocus(i)
	case "enter":
		if s.menuItem < 0 || s.menuItem >= len(items) {
			return nil
		}
		if items[s.menuItem].Kind == grid.ItemFilterInput {
			s.menus[i].Close()
			s.filter.Blur()
			return nil
		}
		return s.activate(i, items[s.menuItem].Kind)
	}

	if !s.filter.Focused() {
		return nil
	}
	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if after := s.filter.Value(); after != before {
		s.menus[i].TypeFilter(after)
		s.row = 0
	}
	return cmd
}

func (s *section) handleSizeKey(msg tea.KeyMsg) {
	opts := s.sizes.Options()
	switch msg.String() {
	case "esc":
		s.sizes.Close()
	case "up", "k":
		s.sizeItem = max(0, s.sizeItem-1)
	case "down", "j":
		s.sizeItem = min(len(opts)-1, s.sizeItem+1)
	case "enter":
		if s.sizeItem >= 0 && s.sizeItem < len(opts) {
			s.sizes.Select(opts[s.sizeItem].Value)
			s.row = 0
		}
	}
}

func (s *section) columnWidths() []int {
	cols := s.engine.Columns()
	widths := make([]int, len(cols))
	for i, c := range cols {
		// room for the sort indicator, filter marker and menu button
		w := lipgloss.Width(c.Header) + 6
		for _, r := range s.records {
			w = max(w, lipgloss.Width(grid.Stringify(r.Field(c.Key))))
		}
		widths[i] = min(w, maxCellWidth)
	}
	return widths
}

func actionLabel(a grid.Action) string {
	return "[" + string(a) + "]"
}

// render draws the section with its first line at absolute row y0 and
// returns the clickable zones of the frame.
func (s *section) render(y0 int, focused bool) (string, []zone) {
	v := s.derive()
	filters := s.state.Filters(s.view)
	sortCfg := filters.SortConfig()
	cols := s.engine.Columns()
	widths := s.columnWidths()

	var lines []string
	var zones []zone
	y := func() int { return y0 + len(lines) }

	title := s.title
	switch {
	case s.loading && !s.loaded:
		title += styleMuted.Render("  Loading...")
	case s.loading:
		title += styleMuted.Render("  refreshing")
	}
	lines = append(lines, styleHeading.Render(title))

	// Header row with one menu button per sortable or filterable column.
	colX := make([]int, len(cols))
	var header strings.Builder
	x := 0
	for i, c := range cols {
		colX[i] = x
		label := c.Header
		if sortCfg.On(c.Key) {
			label += " " + sortCfg.Direction.Indicator()
		}
		if filters.Dynamic[c.Key] != "" {
			label += " *"
		}
		if c.HasMenu() {
			label += " ≡"
		}
		style := styleHeader
		if focused && i == s.col {
			style = styleFocused
		}
		header.WriteString(style.Render(fit(label, widths[i])))
		header.WriteString(cellGap)
		if c.HasMenu() {
			idx := i
			rect := popover.Rect{X: x, Y: y(), Width: widths[i], Height: 1}
			s.menuRegions[i] = rect
			zones = append(zones, zone{rect: rect, onClick: func() tea.Cmd { return s.toggleMenu(idx) }})
		}
		x += widths[i] + len(cellGap)
	}
	actionsX := x
	if s.handlers.ShowActions() {
		header.WriteString(styleHeader.Render(actionsTitle))
	}
	lines = append(lines, header.String())

	if i := s.openMenu(); i >= 0 {
		box, rect, boxZones := s.renderMenu(i, colX[i], y())
		s.menuRegions[i] = s.menuRegions[i].Union(rect)
		zones = append(zones, boxZones...)
		lines = append(lines, box...)
	}

	for r, rec := range v.Rows {
		var row strings.Builder
		for i, c := range cols {
			row.WriteString(fit(grid.Stringify(rec.Field(c.Key)), widths[i]))
			row.WriteString(cellGap)
		}
		line := row.String()
		if focused && r == s.row && !s.popoverOpen() {
			line = styleFocused.Render(line)
		}
		ax := actionsX
		var actions []string
		for _, a := range s.handlers.Actions() {
			label := actionLabel(a)
			act, record := a, rec
			zones = append(zones, zone{
				rect: popover.Rect{X: ax, Y: y(), Width: lipgloss.Width(label), Height: 1},
				onClick: func() tea.Cmd {
					s.handlers.Invoke(act, record)
					return nil
				},
			})
			actions = append(actions, styleButton.Render(label))
			ax += lipgloss.Width(label) + 1
		}
		lines = append(lines, line+strings.Join(actions, " "))
	}
	for k := 0; k < v.Padding; k++ {
		if k == 0 && v.Total == 0 && s.loaded {
			lines = append(lines, styleMuted.Render("No records"))
			continue
		}
		lines = append(lines, "")
	}

	footer, footerZones, sizeButton := s.renderFooter(v, y())
	zones = append(zones, footerZones...)
	lines = append(lines, footer)

	s.sizeRegion = sizeButton
	if s.sizes.IsOpen() {
		for k, o := range s.sizes.Options() {
			marker := "  "
			if o.Value == s.engine.PageSize() {
				marker = "● "
			}
			text := fit(marker+o.Label, sizeButton.Width)
			if k == s.sizeItem {
				text = styleFocused.Render(text)
			}
			rect := popover.Rect{X: sizeButton.X, Y: y(), Width: sizeButton.Width, Height: 1}
			s.sizeRegion = s.sizeRegion.Union(rect)
			value := o.Value
			zones = append(zones, zone{rect: rect, onClick: func() tea.Cmd {
				s.sizes.Select(value)
				s.row = 0
				return nil
			}})
			lines = append(lines, strings.Repeat(" ", sizeButton.X)+text)
		}
	}

	return strings.Join(lines, "\n"), zones
}

func (s *section) menuBox(i int) string {
	items := s.menuItems(i)
	rows := make([]string, len(items))
	width := 24
	for _, it := range items {
		width = max(width, lipgloss.Width(it.Label))
	}
	for k, it := range items {
		text := it.Label
		if it.Kind == grid.ItemFilterInput {
			s.filter.Width = width - 3
			text = s.filter.View()
		}
		text = fit(text, width)
		if k == s.menuItem && it.Kind != grid.ItemFilterInput {
			text = styleFocused.Render(text)
		}
		rows[k] = text
	}
	return stylePopover.Render(strings.Join(rows, "\n"))
}

// renderMenu draws the open menu at (x, top) and returns its lines, its
// region and a zone per item. The border adds one row above the first item.
func (s *section) renderMenu(i, x, top int) ([]string, popover.Rect, []zone) {
	box := s.menuBox(i)
	rect := popover.Rect{X: x, Y: top, Width: lipgloss.Width(box), Height: lipgloss.Height(box)}
	var zones []zone
	for k, it := range s.menuItems(i) {
		kind := it.Kind
		zones = append(zones, zone{
			rect:    popover.Rect{X: x, Y: top + 1 + k, Width: rect.Width, Height: 1},
			onClick: func() tea.Cmd { return s.activate(i, kind) },
		})
	}
	return indent(box, x), rect, zones
}

func (s *section) sizeButtonLabel() string {
	label := s.sizes.Label(s.engine.PageSize())
	if label == "" {
		label = fmt.Sprintf("%d per page", s.engine.PageSize())
	}
	return "[" + label + " ▾]"
}

// renderFooter draws the pagination bar on row y. It also returns the
// region of the page-size button.
func (s *section) renderFooter(v grid.View[student.Student], y int) (string, []zone, popover.Rect) {
	var parts []string
	var zones []zone
	x := 0
	add := func(text string, style lipgloss.Style, onClick func() tea.Cmd) popover.Rect {
		rect := popover.Rect{X: x, Y: y, Width: lipgloss.Width(text), Height: 1}
		if onClick != nil {
			zones = append(zones, zone{rect: rect, onClick: onClick})
		}
		parts = append(parts, style.Render(text))
		x += rect.Width + 1
		return rect
	}
	goTo := func(fn func()) func() tea.Cmd {
		return func() tea.Cmd {
			fn()
			s.row = 0
			return nil
		}
	}

	if v.HasPrev() {
		add("[◀ Previous]", styleButton, goTo(s.engine.Prev))
	} else {
		add("[◀ Previous]", styleDisabled, nil)
	}
	for _, n := range v.Pages() {
		label := "[" + strconv.Itoa(n) + "]"
		if n == v.Page {
			add(label, styleCurrent, nil)
			continue
		}
		page := n
		add(label, styleButton, goTo(func() { s.engine.GoTo(page) }))
	}
	if v.HasNext() {
		add("[Next ▶]", styleButton, goTo(s.engine.Next))
	} else {
		add("[Next ▶]", styleDisabled, nil)
	}
	sizeRect := add(s.sizeButtonLabel(), styleButton, func() tea.Cmd {
		s.toggleSizes()
		return nil
	})
	add(v.Summary(), styleMuted, nil)
	return strings.Join(parts, " "), zones, sizeRect
}
