package cli

import (
	"fmt"
	"io"

	"github.com/getmockd/roster/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// When --json is active, ONLY the JSON encoding of data is written to
// stdout. textFn is called only in text mode.
func (a *app) printResult(data any, textFn func(w io.Writer)) error {
	if a.flags.json {
		return output.JSON(a.out, data)
	}
	textFn(a.out)
	return nil
}

// warn prints a warning to stderr. Warnings never go to stdout so --json
// output stays parseable.
func (a *app) warn(format string, args ...any) {
	output.Warn(a.errOut, format, args...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
