package cli

import (
	"fmt"

	"github.com/getmockd/roster/pkg/toast"
	"github.com/getmockd/roster/pkg/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal client",
		Long: `Start the interactive terminal client with the Students and Honor
Candidates views. Logs go to --log-file only, so they never draw over the
screen.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationFullscreen: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch view {
			case tui.RouteStudents, tui.RouteHonor:
			default:
				return fmt.Errorf("unknown view %q (expected %s or %s)", view, tui.RouteStudents, tui.RouteHonor)
			}
			bus := toast.NewBus()
			defer bus.Close()

			return tui.Run(cmd.Context(), tui.Options{
				Client:    a.client,
				State:     a.state,
				Bus:       bus,
				Logger:    a.logger,
				PageSize:  a.cfg.PageSize,
				PageSizes: a.cfg.PageSizes,
				View:      view,
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", tui.RouteStudents, "Initial view: students or honor-candidates")
	return cmd
}
