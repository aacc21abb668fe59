package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/tui"
	"github.com/spf13/cobra"
)

// fieldFlags are the student fields settable from the command line.
type fieldFlags struct {
	firstName  string
	lastName   string
	email      string
	department string
	gpa        string
}

var fieldFlagNames = map[string]string{
	"first-name": student.FieldFirstName,
	"last-name":  student.FieldLastName,
	"email":      student.FieldEmail,
	"department": student.FieldDepartment,
	"gpa":        student.FieldGPA,
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.firstName, "first-name", "", "First name")
	fs.StringVar(&f.lastName, "last-name", "", "Last name")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.department, "department", "", "Department")
	fs.StringVar(&f.gpa, "gpa", "", "GPA between 0 and 100")
}

func (f *fieldFlags) value(name string) string {
	switch name {
	case "first-name":
		return f.firstName
	case "last-name":
		return f.lastName
	case "email":
		return f.email
	case "department":
		return f.department
	default:
		return f.gpa
	}
}

// apply copies the flags the user set onto form and reports how many there
// were.
func (f *fieldFlags) apply(cmd *cobra.Command, form student.Form) (student.Form, int) {
	n := 0
	for name, field := range fieldFlagNames {
		if cmd.Flags().Changed(name) {
			form = form.With(field, f.value(name))
			n++
		}
	}
	return form, n
}

// prompt runs the interactive student form on the terminal.
func (a *app) prompt(ctx context.Context, values student.Form) (student.Form, error) {
	if !a.interactive() {
		return values, ErrNotInteractive
	}
	if err := tui.NewStudentForm(&values).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return values, fmt.Errorf("cancelled")
		}
		return values, err
	}
	return values, nil
}

// validate returns the field-level messages as one error.
func validate(form student.Form) (student.NewStudent, error) {
	in, err := form.Student()
	if err != nil {
		var fe student.FieldErrors
		if errors.As(err, &fe) {
			var b strings.Builder
			b.WriteString("invalid student:")
			for _, e := range fe {
				fmt.Fprintf(&b, "\n  %s: %s", e.Field, e.Message)
			}
			return in, errors.New(b.String())
		}
		return in, err
	}
	return in, nil
}

func newAddCmd(a *app) *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new student",
		Long: `Add a new student. Without field flags an interactive form is shown.
All fields are required; GPA must be a number between 0 and 100.`,
		Example: `  # Interactive form
  roster add

  # Non-interactive
  roster add --first-name Ada --last-name Lovelace --email ada@uni.edu --department CS --gpa 98`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, n := ff.apply(cmd, student.Form{})
			if n == 0 {
				var err error
				if form, err = a.prompt(cmd.Context(), form); err != nil {
					return err
				}
			}
			in, err := validate(form)
			if err != nil {
				return err
			}

			created, err := a.client.Create(cmd.Context(), in)
			if err != nil {
				a.logger.Error("failed to add student", "error", err)
				return apiError(err)
			}
			a.logger.Info("student added", "id", created.ID)
			return a.printResult(created, func(w io.Writer) {
				fmt.Fprintf(w, "Student added successfully: %s\n", created)
			})
		},
	}
	ff.register(cmd)
	return cmd
}
