package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/getmockd/roster/pkg/student"
	"github.com/spf13/cobra"
)

// findStudent looks a student up by exact ID. The API filters IDs by
// substring, so the result is narrowed here.
func (a *app) findStudent(ctx context.Context, id int64) (student.Student, error) {
	matches, err := a.client.List(ctx, map[string]string{student.FieldID: strconv.FormatInt(id, 10)})
	if err != nil {
		return student.Student{}, apiError(err)
	}
	for _, s := range matches {
		if s.ID == id {
			return s, nil
		}
	}
	return student.Student{}, fmt.Errorf("%w: #%d", ErrStudentNotFound, id)
}

func newEditCmd(a *app) *cobra.Command {
	var ff fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a student",
		Long: `Edit a student by ID. Field flags replace single fields; without field
flags an interactive form prefilled with the current values is shown.`,
		Example: `  # Interactive form
  roster edit 42

  # Change one field
  roster edit 42 --gpa 93.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid student ID %q", args[0])
			}
			current, err := a.findStudent(cmd.Context(), id)
			if err != nil {
				return err
			}

			form, n := ff.apply(cmd, student.FormFrom(current.Input()))
			if n == 0 {
				if form, err = a.prompt(cmd.Context(), form); err != nil {
					return err
				}
			}
			in, err := validate(form)
			if err != nil {
				return err
			}
			if in == current.Input() {
				return ErrNoChanges
			}

			updated, err := a.client.Update(cmd.Context(), id, in)
			if err != nil {
				a.logger.Error("failed to update student", "id", id, "error", err)
				return apiError(err)
			}
			a.logger.Info("student updated", "id", id)
			return a.printResult(updated, func(w io.Writer) {
				fmt.Fprintf(w, "Student updated successfully: %s\n", updated)
			})
		},
	}
	ff.register(cmd)
	return cmd
}
