package tui

import (
	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/getmockd/roster/pkg/student"
)

// Modal titles.
const (
	TitleAdd  = "Add New Student"
	TitleEdit = "Edit Student"
)

// NewStudentForm builds the add/edit form bound to values. Every input is
// validated with the same rules as the backend payload.
func NewStudentForm(values *student.Form) *huh.Form {
	input := func(field, title, placeholder string, value *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Placeholder(placeholder).
			Value(value).
			Validate(func(s string) error {
				return student.Form{}.With(field, s).ValidateField(field)
			})
	}
	return huh.NewForm(
		huh.NewGroup(
			input(student.FieldFirstName, "First Name", "Ada", &values.FirstName),
			input(student.FieldLastName, "Last Name", "Lovelace", &values.LastName),
			input(student.FieldEmail, "Email", "ada@example.edu", &values.Email),
			input(student.FieldDepartment, "Department", "CS", &values.Department),
			input(student.FieldGPA, "GPA", "0 - 100", &values.GPA),
		),
	).WithShowHelp(true)
}

// formModal hosts the student form on top of the current view. A nil
// editing record means the form creates a new student.
type formModal struct {
	title   string
	editing *student.Student
	values  *student.Form
	form    *huh.Form
}

func newFormModal(editing *student.Student, values student.Form) *formModal {
	title := TitleAdd
	if editing != nil {
		title = TitleEdit
	}
	v := &values
	return &formModal{title: title, editing: editing, values: v, form: NewStudentForm(v)}
}

func addModal() *formModal {
	return newFormModal(nil, student.Form{})
}

func editModal(s student.Student) *formModal {
	rec := s
	return newFormModal(&rec, student.FormFrom(s.Input()))
}

func (f *formModal) init() tea.Cmd {
	return f.form.Init()
}

// modalResult tells the app what happened after a modal update.
type modalResult int

const (
	modalOpen modalResult = iota
	modalSubmitted
	modalCancelled
)

func (f *formModal) update(msg tea.Msg) (modalResult, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return modalCancelled, nil
	}
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	switch f.form.State {
	case huh.StateCompleted:
		return modalSubmitted, nil
	case huh.StateAborted:
		return modalCancelled, nil
	}
	return modalOpen, cmd
}

func (f *formModal) view() string {
	return styleModal.Render(styleTitle.Render(f.title) + "\n\n" + f.form.View() +
		"\n" + styleMuted.Render("esc to cancel"))
}
