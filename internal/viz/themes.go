package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Proton   lipgloss.Color
	Electron lipgloss.Color
	Field    lipgloss.Color
	Cursor   lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:     "classic",
		Proton:   lipgloss.Color("#e62937"),
		Electron: lipgloss.Color("#0079f1"),
		Field:    lipgloss.Color("#888888"),
		Cursor:   lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#00cccc"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Proton:   lipgloss.Color("#ff00ff"),
		Electron: lipgloss.Color("#00ffff"),
		Field:    lipgloss.Color("#555577"),
		Cursor:   lipgloss.Color("#ffff00"),
		Accent:   lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Proton:   lipgloss.Color("#88ff88"),
		Electron: lipgloss.Color("#00cc00"),
		Field:    lipgloss.Color("#005500"),
		Cursor:   lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#00ff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Proton:   lipgloss.Color("#ff6b6b"),
		Electron: lipgloss.Color("#feca57"),
		Field:    lipgloss.Color("#8b6b8c"),
		Cursor:   lipgloss.Color("#ff9ff3"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) inkStyle(ink Ink) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch ink {
	case InkField:
		return s.Foreground(t.Field)
	case InkCursor:
		return s.Foreground(t.Cursor)
	case InkElectron:
		return s.Foreground(t.Electron).Bold(true)
	case InkProton:
		return s.Foreground(t.Proton).Bold(true)
	}
	return s.Foreground(t.Text)
}
