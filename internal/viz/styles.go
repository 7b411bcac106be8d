package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner returns the glyph for an animation frame count.
func Spinner(frame uint64) string {
	return spinnerFrames[frame%uint64(len(spinnerFrames))]
}

// Gauge renders a horizontal slider track filled to fraction.
func Gauge(fraction float64, width int, fill, track lipgloss.Color) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(track).Render(strings.Repeat("─", width-filled))
}
