package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getmockd/roster/pkg/client"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/viewstate"
)

// Routes of the navigable views.
const (
	RouteStudents = "students"
	RouteHonor    = "honor-candidates"
)

// Page and section titles.
const (
	TitleStudents  = "Students Management"
	TitleAll       = "All Students"
	TitleExcellent = "Excellent Students (GPA ≥ 90)"
	TitleHonor     = "Honor Candidates (GPA ≥ 90)"
	TitleNotFound  = "Page not found"

	LabelShowTop = "Show Top Student per Department"
	LabelShowAll = "Show All Honor Candidates"
)

var navigation = []struct {
	route string
	label string
	key   string
}{
	{RouteStudents, "Students", "1"},
	{RouteHonor, "Honor Candidates", "2"},
}

// button is a page-level action rendered under the page title.
type button struct {
	label   string
	key     string
	onClick func() tea.Cmd
}

// page is one routed view: a title, page actions and its grid sections.
type page struct {
	route    string
	title    string
	sections []*section
	buttons  func() []button
}

func (p *page) section(id string) *section {
	for _, s := range p.sections {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (m *Model) newSection(id, title string, view viewstate.View, fetch fetchFunc) *section {
	columns := student.AllColumns
	if view == viewstate.Honor {
		columns = student.HonorColumns
	}
	return newSection(sectionConfig{
		id:        id,
		title:     title,
		view:      view,
		columns:   columns,
		state:     m.state,
		fetch:     fetch,
		onEdit:    m.openEdit,
		pageSize:  m.pageSize,
		pageSizes: m.pageSizes,
	})
}

func (m *Model) studentsPage() *page {
	p := &page{route: RouteStudents, title: TitleStudents}
	p.sections = []*section{
		m.newSection("all", TitleAll, viewstate.AllStudents, func(ctx context.Context) ([]student.Student, error) {
			return m.client.List(ctx, nil)
		}),
		m.newSection("excellent", TitleExcellent, viewstate.ExcellentStudents, func(ctx context.Context) ([]student.Student, error) {
			return m.client.List(ctx, client.ExcellentParams())
		}),
	}
	p.buttons = func() []button {
		return []button{{label: "[+ " + TitleAdd + "]", key: "a", onClick: m.openAdd}}
	}
	return p
}

func (m *Model) honorPage() *page {
	p := &page{route: RouteHonor, title: TitleHonor}
	honor := m.newSection("honor", "Candidates", viewstate.Honor, func(ctx context.Context) ([]student.Student, error) {
		if m.state.TopPerDepartment() {
			return m.client.TopPerDepartment(ctx)
		}
		return m.client.List(ctx, client.HonorParams())
	})
	p.sections = []*section{honor}
	p.buttons = func() []button {
		label := LabelShowTop
		if m.state.TopPerDepartment() {
			label = LabelShowAll
		}
		return []button{{label: "[" + label + "]", key: "t", onClick: func() tea.Cmd {
			if _, err := m.state.ToggleTopPerDepartment(); err != nil {
				m.logger.Warn("failed to save view state", "view", string(viewstate.Honor), "error", err)
			}
			return m.fetch(RouteHonor, honor)
		}}}
	}
	return p
}
