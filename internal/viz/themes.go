package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Voltage    lipgloss.Color
	Frequency  lipgloss.Color
	Speed      lipgloss.Color
}

// Available themes
var (
	ThemeLab = Theme{
		Name:       "lab",
		Primary:    lipgloss.Color("#6496ff"), // Panel blue
		Secondary:  lipgloss.Color("#8fa8d8"),
		Accent:     lipgloss.Color("#c8dcff"),
		Background: lipgloss.Color("#1a1f2f"),
		Text:       lipgloss.Color("#e0e6f0"),
		Muted:      lipgloss.Color("#4a5570"),
		Voltage:    lipgloss.Color("#ffb74d"),
		Frequency:  lipgloss.Color("#4dd0e1"),
		Speed:      lipgloss.Color("#00ff88"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Voltage:    lipgloss.Color("#88ff88"),
		Frequency:  lipgloss.Color("#88ff88"),
		Speed:      lipgloss.Color("#ccffcc"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Voltage:    lipgloss.Color("#ffaa00"),
		Frequency:  lipgloss.Color("#0088ff"),
		Speed:      lipgloss.Color("#00ff00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Voltage:    lipgloss.Color("#ffc048"),
		Frequency:  lipgloss.Color("#ff9ff3"),
		Speed:      lipgloss.Color("#5fd068"),
	}

	// All available themes, default first
	Themes = []Theme{
		ThemeLab,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	t, _ := LookupTheme(name)
	return t
}

// LookupTheme returns a theme by name and whether it exists.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeLab, false
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
