package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show roster version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			info := map[string]string{
				"version":   Version,
				"commit":    Commit,
				"buildDate": BuildDate,
				"go":        runtime.Version(),
				"platform":  runtime.GOOS + "/" + runtime.GOARCH,
			}
			return a.printResult(info, func(w io.Writer) {
				fmt.Fprintf(w, "roster %s (commit %s, built %s)\n", Version, Commit, BuildDate)
				fmt.Fprintf(w, "  %s %s\n", info["go"], info["platform"])
			})
		},
	}
}
