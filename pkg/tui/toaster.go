package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getmockd/roster/pkg/toast"
)

type toastMsg toast.Toast

// toastExpireMsg fires when the oldest visible toast may have expired.
type toastExpireMsg time.Time

// waitToast blocks on the subscription and delivers the next toast. It
// returns nil once the bus is closed.
func waitToast(sub toast.Subscriber) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-sub
		if !ok {
			return nil
		}
		return toastMsg(t)
	}
}

func expireAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return toastExpireMsg(t) })
}

// renderToasts stacks the active toasts, newest last, right-aligned to width.
func renderToasts(active []toast.Toast, width int) string {
	if len(active) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(active))
	for _, t := range active {
		blocks = append(blocks, toastStyle(t).Render(t.Message))
	}
	out := lipgloss.JoinVertical(lipgloss.Right, blocks...)
	if width > 0 {
		out = lipgloss.PlaceHorizontal(width, lipgloss.Right, out)
	}
	return strings.TrimRight(out, "\n")
}
