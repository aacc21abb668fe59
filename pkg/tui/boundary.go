package tui

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// BoundaryMessage replaces a section whose rendering panicked.
const BoundaryMessage = "An error occurred in this section."

// boundary renders one section. A panic inside render is logged and the
// section is replaced by BoundaryMessage; the rest of the screen renders
// normally.
func boundary(logger *slog.Logger, section string, render func() (string, []zone)) (out string, zones []zone) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("section render failed",
				"section", section,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			out, zones = styleError.Render(BoundaryMessage), nil
		}
	}()
	return render()
}
