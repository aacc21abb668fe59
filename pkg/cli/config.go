package cli

import (
	"fmt"
	"io"

	"github.com/getmockd/roster/pkg/cli/internal/output"
	"github.com/getmockd/roster/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// configEntry is one row of the effective configuration.
type configEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Show the effective configuration and where each value came from:
flag, env, local (.rosterrc.yaml), global or default.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			entries := make([]configEntry, 0, len(cliconfig.Keys))
			for _, k := range cliconfig.Keys {
				entries = append(entries, configEntry{Key: k, Value: a.cfg.Value(k), Source: a.cfg.Source(k)})
			}
			return a.printResult(entries, func(w io.Writer) {
				tw := output.Table(w)
				_, _ = fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
				for _, e := range entries {
					value := e.Value
					if value == "" {
						value = "-"
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, value, e.Source)
				}
				_ = tw.Flush()

				fmt.Fprintln(w)
				fmt.Fprintln(w, "Config files searched:")
				for _, p := range cliconfig.SearchPaths() {
					fmt.Fprintf(w, "  %s\n", p)
				}
			})
		},
	}
}
