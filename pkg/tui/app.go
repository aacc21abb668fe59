// Package tui implements the interactive terminal client: a routed shell
// with the Students and Honor Candidates views, column menus, the add/edit
// modal and the toast tray.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getmockd/roster/pkg/client"
	"github.com/getmockd/roster/pkg/grid"
	"github.com/getmockd/roster/pkg/popover"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/toast"
	"github.com/getmockd/roster/pkg/viewstate"
)

// Toast texts.
const (
	MsgFetchFailed = "Oops, something went wrong"
	MsgAdded       = "Student added successfully"
	MsgUpdated     = "Student updated successfully"
	MsgSaveFailed  = "Could not save student"
)

// Options configures the TUI.
type Options struct {
	Client    client.StudentClient
	State     *viewstate.Manager
	Bus       *toast.Bus
	Logger    *slog.Logger
	PageSize  int
	PageSizes []int
	// View is the initial route. Empty means RouteStudents.
	View string
}

// recordsMsg carries the result of one section fetch.
type recordsMsg struct {
	route   string
	section string
	records []student.Student
	err     error
}

// savedMsg carries the result of a create or update.
type savedMsg struct {
	modal   *formModal
	student *student.Student
	err     error
}

// Model is the bubbletea model of the whole application.
type Model struct {
	ctx    context.Context
	client client.StudentClient
	state  *viewstate.Manager
	bus    *toast.Bus
	logger *slog.Logger

	hub         *popover.Hub
	tray        *toast.Tray
	sub         toast.Subscriber
	unsubscribe func()

	pageSize  int
	pageSizes []int
	pages     map[string]*page
	route     string
	focus     int
	modal     *formModal

	zones   []zone
	pending []tea.Cmd
	width   int
	height  int
}

// New builds the model and subscribes it to the toast bus.
func New(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	bus := opts.Bus
	if bus == nil {
		bus = toast.NewBus()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = grid.DefaultPageSize
	}
	pageSizes := opts.PageSizes
	if len(pageSizes) == 0 {
		pageSizes = grid.DefaultPageSizes
	}
	route := opts.View
	if route == "" {
		route = RouteStudents
	}

	m := &Model{
		ctx:       ctx,
		client:    opts.Client,
		state:     opts.State,
		bus:       bus,
		logger:    logger,
		hub:       popover.NewHub(),
		tray:      toast.NewTray(toast.DismissAfter),
		pageSize:  pageSize,
		pageSizes: pageSizes,
		route:     route,
	}
	m.sub, m.unsubscribe = bus.Subscribe()
	m.pages = map[string]*page{
		RouteStudents: m.studentsPage(),
		RouteHonor:    m.honorPage(),
	}
	return m
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Close releases the toast subscription and the mounted popovers.
func (m *Model) Close() {
	if p := m.current(); p != nil {
		for _, s := range p.sections {
			s.unmount()
		}
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Route returns the active route.
func (m *Model) Route() string {
	return m.route
}

func (m *Model) current() *page {
	return m.pages[m.route]
}

func (m *Model) focused() *section {
	p := m.current()
	if p == nil || len(p.sections) == 0 {
		return nil
	}
	return p.sections[m.focus%len(p.sections)]
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitToast(m.sub), m.mount())
}

// navigate switches routes. The previous page's popovers are unmounted and
// the new page refetches its data.
func (m *Model) navigate(route string) tea.Cmd {
	if p := m.current(); p != nil {
		for _, s := range p.sections {
			s.unmount()
		}
	}
	m.route = route
	m.focus = 0
	return m.mount()
}

func (m *Model) mount() tea.Cmd {
	p := m.current()
	if p == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(p.sections))
	for _, s := range p.sections {
		s.mount(m.hub)
		cmds = append(cmds, m.fetch(p.route, s))
	}
	return tea.Batch(cmds...)
}

// fetch loads the records of s in the background.
func (m *Model) fetch(route string, s *section) tea.Cmd {
	s.loading = true
	ctx, load, id := m.ctx, s.fetch, s.id
	return func() tea.Msg {
		records, err := load(ctx)
		return recordsMsg{route: route, section: id, records: records, err: err}
	}
}

func (m *Model) reload() tea.Cmd {
	p := m.current()
	if p == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(p.sections))
	for _, s := range p.sections {
		cmds = append(cmds, m.fetch(p.route, s))
	}
	return tea.Batch(cmds...)
}

func (m *Model) openAdd() tea.Cmd {
	m.openModal(addModal())
	return nil
}

func (m *Model) openEdit(s student.Student) {
	m.openModal(editModal(s))
}

func (m *Model) openModal(f *formModal) {
	if p := m.current(); p != nil {
		for _, s := range p.sections {
			for _, menu := range s.menus {
				menu.Close()
			}
			s.sizes.Close()
		}
	}
	m.modal = f
	m.pending = append(m.pending, f.init())
}

// save submits the modal's values. The modal is kept so a failed save can
// reopen it with the entered values.
func (m *Model) save(f *formModal) tea.Cmd {
	in, err := f.values.Student()
	if err != nil {
		m.logger.Warn("student form rejected", "error", err)
		m.openModal(newFormModal(f.editing, *f.values))
		return nil
	}
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		var saved *student.Student
		var err error
		if f.editing == nil {
			saved, err = c.Create(ctx, in)
		} else {
			saved, err = c.Update(ctx, f.editing.ID, in)
		}
		return savedMsg{modal: f, student: saved, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if len(m.pending) > 0 {
		cmd = tea.Batch(append([]tea.Cmd{cmd}, m.pending...)...)
		m.pending = nil
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return nil

	case recordsMsg:
		return m.receive(msg)

	case savedMsg:
		return m.saved(msg)

	case toastMsg:
		m.tray.Add(toast.Toast(msg))
		return tea.Batch(waitToast(m.sub), expireAfter(m.tray.TTL()))

	case toastExpireMsg:
		m.tray.Expire(time.Time(msg))
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.click(popover.Point{X: msg.X, Y: msg.Y})
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if s := m.focused(); s != nil && s.filter.Focused() {
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		return cmd
	}
	return nil
}

// click dispatches a pointer-down to the popover hub first, so open
// popovers see it before the control under the pointer reacts.
func (m *Model) click(p popover.Point) tea.Cmd {
	m.hub.Dispatch(p)
	if z, ok := hit(m.zones, p); ok && z.onClick != nil {
		return z.onClick()
	}
	return nil
}

func (m *Model) receive(msg recordsMsg) tea.Cmd {
	p := m.pages[msg.route]
	if p == nil {
		return nil
	}
	s := p.section(msg.section)
	if s == nil {
		return nil
	}
	s.loading = false
	if msg.err != nil {
		m.logger.Error("failed to fetch students",
			"route", msg.route,
			"section", msg.section,
			"error", msg.err,
		)
		m.bus.Error(MsgFetchFailed)
		return nil
	}
	s.records = msg.records
	s.loaded = true
	return nil
}

func (m *Model) saved(msg savedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("failed to save student", "error", msg.err)
		m.bus.Error(MsgSaveFailed)
		m.openModal(newFormModal(msg.modal.editing, *msg.modal.values))
		return nil
	}
	text := MsgAdded
	if msg.modal.editing != nil {
		text = MsgUpdated
	}
	if msg.student != nil {
		m.logger.Info("student saved", "id", msg.student.ID)
	}
	m.bus.Success(text, toast.VariantLightFilled)
	return m.reload()
}

func (m *Model) updateModal(msg tea.Msg) tea.Cmd {
	f := m.modal
	result, cmd := f.update(msg)
	switch result {
	case modalSubmitted:
		m.modal = nil
		return m.save(f)
	case modalCancelled:
		m.modal = nil
		return nil
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s := m.focused(); s != nil {
		if handled, cmd := s.handleKey(msg); handled {
			return cmd
		}
	}

	key := msg.String()
	for _, n := range navigation {
		if key == n.key {
			return m.navigate(n.route)
		}
	}
	if p := m.current(); p != nil && p.buttons != nil {
		for _, b := range p.buttons() {
			if key == b.key {
				return b.onClick()
			}
		}
	}

	switch key {
	case "q":
		return tea.Quit
	case "r":
		return m.reload()
	case "tab", "shift+tab":
		if p := m.current(); p != nil && len(p.sections) > 0 {
			step := 1
			if key == "shift+tab" {
				step = len(p.sections) - 1
			}
			m.focus = (m.focus + step) % len(p.sections)
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.modal != nil {
		m.zones = nil
		out := m.modal.view()
		if m.width > 0 && m.height > 0 {
			out = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
		}
		return out
	}

	var lines []string
	var zones []zone
	y := func() int { return len(lines) }

	nav, navZones := m.renderNav(y())
	zones = append(zones, navZones...)
	lines = append(lines, nav, "")

	p := m.current()
	if p == nil {
		lines = append(lines,
			styleTitle.Render(TitleNotFound),
			"",
			styleMuted.Render(fmt.Sprintf("Unknown view %q. Press 1 for Students.", m.route)),
		)
		m.zones = zones
		return strings.Join(append(lines, "", m.footer()), "\n")
	}

	lines = append(lines, styleTitle.Render(p.title))
	if p.buttons != nil {
		bar, barZones := renderButtons(p.buttons(), y())
		zones = append(zones, barZones...)
		lines = append(lines, bar)
	}
	for i, s := range p.sections {
		lines = append(lines, "")
		out, sectionZones := boundary(m.logger, s.id, func() (string, []zone) {
			return s.render(y(), i == m.focus)
		})
		zones = append(zones, sectionZones...)
		lines = append(lines, strings.Split(out, "\n")...)
	}
	m.zones = zones

	lines = append(lines, "", m.footer())
	if t := renderToasts(m.tray.Active(), m.width); t != "" {
		lines = append(lines, t)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderNav(y int) (string, []zone) {
	parts := []string{styleTitle.Render("roster")}
	x := lipgloss.Width("roster") + 2
	var zones []zone
	for _, n := range navigation {
		label := fmt.Sprintf("[%s %s]", n.key, n.label)
		style := styleNav
		if m.route == n.route {
			style = styleNavActive
		}
		route := n.route
		zones = append(zones, zone{
			rect:    popover.Rect{X: x, Y: y, Width: lipgloss.Width(label), Height: 1},
			onClick: func() tea.Cmd { return m.navigate(route) },
		})
		parts = append(parts, style.Render(label))
		x += lipgloss.Width(label) + 2
	}
	return strings.Join(parts, "  "), zones
}

func renderButtons(buttons []button, y int) (string, []zone) {
	var parts []string
	var zones []zone
	x := 0
	for _, b := range buttons {
		w := lipgloss.Width(b.label)
		zones = append(zones, zone{rect: popover.Rect{X: x, Y: y, Width: w, Height: 1}, onClick: b.onClick})
		parts = append(parts, styleButton.Render(b.label))
		x += w + 2
	}
	return strings.Join(parts, "  "), zones
}

func (m *Model) footer() string {
	help := "1/2 views · tab section · ←/→ column · ↑/↓ row · enter menu · [ ] page · p page size · e edit · r reload · q quit"
	if p := m.current(); p != nil && p.buttons != nil {
		for _, b := range p.buttons() {
			help += fmt.Sprintf(" · %s %s", b.key, strings.Trim(b.label, "[]+ "))
		}
	}
	return styleMuted.Render(help)
}
