package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/getmockd/roster/pkg/toast"
)

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F2"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1E7F3C", Dark: "#3FB950"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#F85149"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#0B61A4", Dark: "#58A6FF"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}

	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleHeading   = lipgloss.NewStyle().Bold(true)
	styleHeader    = lipgloss.NewStyle().Bold(true).Underline(true)
	styleFocused   = lipgloss.NewStyle().Reverse(true)
	styleMuted     = lipgloss.NewStyle().Foreground(colorMuted)
	styleButton    = lipgloss.NewStyle().Foreground(colorAccent)
	styleDisabled  = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
	styleCurrent   = lipgloss.NewStyle().Bold(true).Reverse(true)
	styleError     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleNavActive = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
	styleNav       = lipgloss.NewStyle().Foreground(colorMuted)

	stylePopover = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)

func kindColor(k toast.Kind) lipgloss.AdaptiveColor {
	switch k {
	case toast.KindSuccess:
		return colorSuccess
	case toast.KindError:
		return colorError
	case toast.KindWarning:
		return colorWarning
	default:
		return colorInfo
	}
}

// toastStyle renders the three variants: filled uses the kind colour as
// background, outlined as border, light-filled as text on a plain border.
func toastStyle(t toast.Toast) lipgloss.Style {
	c := kindColor(t.Kind)
	base := lipgloss.NewStyle().Padding(0, 1)
	switch t.Variant {
	case toast.VariantOutlined:
		return base.Border(lipgloss.NormalBorder()).BorderForeground(c).Foreground(c)
	case toast.VariantLightFilled:
		return base.Border(lipgloss.HiddenBorder()).Foreground(c).Faint(false)
	default:
		return base.Background(c).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}
}
