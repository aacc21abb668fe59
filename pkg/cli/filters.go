package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/getmockd/roster/pkg/cli/internal/output"
	"github.com/getmockd/roster/pkg/viewstate"
	"github.com/spf13/cobra"
)

func newFiltersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show or reset the saved filters and sorts",
		Long: `Show or reset the filters and sorts saved for each view.

Views: all (All Students), excellent (Excellent Students), honor (Honor Candidates).`,
	}
	cmd.AddCommand(newFiltersShowCmd(a), newFiltersResetCmd(a))
	return cmd
}

func parseViews(args []string) ([]viewstate.View, error) {
	if len(args) == 0 {
		return viewstate.Views, nil
	}
	v, err := viewstate.ParseView(args[0])
	if err != nil {
		return nil, err
	}
	return []viewstate.View{v}, nil
}

func newFiltersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [view]",
		Short: "Show the saved state of one or all views",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			views, err := parseViews(args)
			if err != nil {
				return err
			}
			state := a.state.State()
			if a.flags.json {
				if len(args) == 0 {
					return output.JSON(a.out, state)
				}
				if views[0] == viewstate.Honor {
					return output.JSON(a.out, state.Honor)
				}
				return output.JSON(a.out, state.Get(views[0]))
			}

			tw := output.Table(a.out)
			_, _ = fmt.Fprintln(tw, "VIEW\tSORT\tFILTERS\tTOP PER DEPARTMENT")
			for _, v := range views {
				f := state.Get(v)
				top := "-"
				if v == viewstate.Honor {
					top = fmt.Sprint(state.Honor.TopPerDepartment)
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v, describeSort(f), describeFilters(f), top)
			}
			return tw.Flush()
		},
	}
}

func describeSort(f viewstate.ViewFilters) string {
	if f.SortBy == "" {
		return "-"
	}
	return fmt.Sprintf("%s %s", f.SortBy, f.SortDir)
}

func describeFilters(f viewstate.ViewFilters) string {
	active := f.Filters().Active()
	if len(active) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(active))
	for k := range active {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, active[k])
	}
	return strings.Join(parts, " ")
}

func newFiltersResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [view]",
		Short: "Restore the default filters and sort of one or all views",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			views, err := parseViews(args)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				err = a.state.ResetAll()
			} else {
				err = a.state.Reset(views[0])
			}
			if err != nil {
				return fmt.Errorf("save view state: %w", err)
			}
			names := make([]string, len(views))
			for i, v := range views {
				names[i] = string(v)
			}
			return a.printResult(map[string]any{"reset": names}, func(w io.Writer) {
				fmt.Fprintf(w, "Reset %s: %s\n", plural(len(views), "view", "views"), strings.Join(names, ", "))
			})
		},
	}
}
