package cli

import (
	"context"
	"fmt"

	"github.com/getmockd/roster/pkg/client"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/viewstate"
	"github.com/spf13/cobra"
)

func newHonorCmd(a *app) *cobra.Command {
	var (
		lf       listFlags
		top, all bool
	)
	cmd := &cobra.Command{
		Use:   "honor",
		Short: "Print a page of the Honor Candidates view",
		Long: `Print one page of the Honor Candidates view (GPA >= 90).

--top switches the view to the top student of each department and --all
switches it back. The choice is saved with the view.`,
		Example: `  # Honor candidates, best first
  roster honor

  # Only the best student per department
  roster honor --top`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if top || all {
				if err := a.state.SetTopPerDepartment(top); err != nil {
					return fmt.Errorf("save view state: %w", err)
				}
			}
			return a.runList(cmd.Context(), viewstate.Honor, student.HonorColumns, &lf,
				func(ctx context.Context) ([]student.Student, error) {
					if a.state.TopPerDepartment() {
						return a.client.TopPerDepartment(ctx)
					}
					return a.client.List(ctx, client.HonorParams())
				})
		},
	}
	cmd.Flags().BoolVar(&top, "top", false, "Show the top student per department")
	cmd.Flags().BoolVar(&all, "all", false, "Show all honor candidates")
	cmd.MarkFlagsMutuallyExclusive("top", "all")
	lf.register(cmd)
	return cmd
}
