package cli

import (
	"context"

	"github.com/getmockd/roster/pkg/client"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/viewstate"
	"github.com/spf13/cobra"
)

func newStudentsCmd(a *app) *cobra.Command {
	var (
		lf        listFlags
		excellent bool
	)
	cmd := &cobra.Command{
		Use:     "students",
		Aliases: []string{"ls", "list"},
		Short:   "Print a page of the All Students view",
		Long: `Print one page of the All Students view, or of the Excellent Students
view (GPA >= 90) with --excellent.

Filter and sort flags change the saved state of the view, exactly like the
column menus of the TUI.`,
		Example: `  # First page of all students
  roster students

  # Filter by department and sort by GPA, highest first
  roster students --filter department=cs --sort gpa:desc

  # Excellent students, 10 per page, second page
  roster students --excellent --page-size 10 --page 2

  # Extra client-side predicate
  roster students --where 'gpa >= 95 && lastName startsWith "T"'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := viewstate.AllStudents
			var params map[string]string
			if excellent {
				view = viewstate.ExcellentStudents
				params = client.ExcellentParams()
			}
			return a.runList(cmd.Context(), view, student.AllColumns, &lf,
				func(ctx context.Context) ([]student.Student, error) {
					return a.client.List(ctx, params)
				})
		},
	}
	cmd.Flags().BoolVar(&excellent, "excellent", false, "Show the Excellent Students view (GPA >= 90)")
	lf.register(cmd)
	return cmd
}
