package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// Theme is the palette the package styles are built from.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Live       lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:       "default",
		Primary:    lipgloss.Color("#00ffff"),
		Secondary:  lipgloss.Color("#00ccff"),
		Accent:     lipgloss.Color("#ff00ff"),
		Background: lipgloss.Color("#1a001a"),
		Text:       lipgloss.Color("#888899"),
		Muted:      lipgloss.Color("#666688"),
		Live:       lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00aa00"),
		Muted:      lipgloss.Color("#005500"),
		Live:       lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#aaaaaa"),
		Muted:      lipgloss.Color("#555555"),
		Live:       lipgloss.Color("#ffffff"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeDefault, ThemeRetro, ThemeMinimal}
)

// UseTheme rebuilds the package styles from the named theme. It is not safe
// to call while another goroutine renders.
func UseTheme(name string) error {
	for _, t := range Themes {
		if t.Name == name {
			apply(t)
			return nil
		}
	}
	return errors.Errorf("unknown theme: %s (available: %v)", name, ThemeNames())
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
