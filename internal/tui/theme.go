// ABOUTME: Colors and styles for the terminal map editor
// ABOUTME: Shape strokes, fills, header controls, status bar, and modal

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorLine     = lipgloss.Color("#22c55e")
	colorCircle   = lipgloss.Color("#3b82f6")
	colorSelected = lipgloss.Color("#f97316")
	colorDraft    = lipgloss.Color("#ef4444")

	colorMuted   = lipgloss.AdaptiveColor{Light: "240", Dark: "243"}
	colorControl = lipgloss.AdaptiveColor{Light: "252", Dark: "236"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "250", Dark: "243"}
)

var (
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)

	styleSearchBox = lipgloss.NewStyle().Background(colorControl)

	styleButton         = lipgloss.NewStyle().Bold(true)
	styleButtonDisabled = lipgloss.NewStyle().Foreground(colorMuted)

	styleStatus = lipgloss.NewStyle().Foreground(colorMuted)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)
)

// strokeStyle returns the style of a canvas layer.
func strokeStyle(l layer) lipgloss.Style {
	switch l {
	case layerLine, layerLineFill:
		return lipgloss.NewStyle().Foreground(colorLine)
	case layerCircle, layerCircleFill:
		return lipgloss.NewStyle().Foreground(colorCircle)
	case layerSelected:
		return lipgloss.NewStyle().Foreground(colorSelected).Bold(true)
	case layerSelectedFill:
		return lipgloss.NewStyle().Foreground(colorSelected)
	case layerDraft:
		return lipgloss.NewStyle().Foreground(colorDraft)
	default:
		return lipgloss.NewStyle()
	}
}
