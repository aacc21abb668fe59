package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getmockd/roster/pkg/popover"
)

// zone is a clickable screen region recorded while rendering a frame.
type zone struct {
	rect    popover.Rect
	onClick func() tea.Cmd
}

// hit returns the last zone containing p. Later zones are drawn on top.
func hit(zones []zone, p popover.Point) (zone, bool) {
	for i := len(zones) - 1; i >= 0; i-- {
		if zones[i].rect.Contains(p) {
			return zones[i], true
		}
	}
	return zone{}, false
}

// fit truncates s to w cells and pads it with spaces to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) > w {
		var b strings.Builder
		width := 0
		for _, r := range s {
			rw := lipgloss.Width(string(r))
			if width+rw > w-1 {
				break
			}
			b.WriteRune(r)
			width += rw
		}
		b.WriteString("…")
		s = b.String()
	}
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// indent prefixes every line of block with x spaces.
func indent(block string, x int) []string {
	lines := strings.Split(block, "\n")
	if x <= 0 {
		return lines
	}
	prefix := strings.Repeat(" ", x)
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return lines
}
