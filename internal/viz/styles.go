package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	ErrorText lipgloss.Style
	KeyHint   lipgloss.Style
	Selected  lipgloss.Style
	Panel     lipgloss.Style

	// Slot bar colors
	LiveSlot  lipgloss.Style
	SlackSlot lipgloss.Style
	GrowMark  lipgloss.Style
)

func init() {
	apply(ThemeDefault)
}

func apply(t Theme) {
	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	Label = lipgloss.NewStyle().Foreground(t.Text)
	Value = lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
	ErrorText = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(t.Muted)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Background(t.Background)
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	LiveSlot = lipgloss.NewStyle().Foreground(t.Live)
	SlackSlot = lipgloss.NewStyle().Foreground(t.Muted)
	GrowMark = lipgloss.NewStyle().Foreground(t.Warning)
}

// SlotBar draws capacity as width cells, live slots filled and slack hollow.
// When capacity exceeds width each cell stands for several slots.
func SlotBar(size, capacity, width int) string {
	if capacity <= 0 || width <= 0 {
		return SlackSlot.Render(strings.Repeat("·", max(width, 0)))
	}
	cells := min(capacity, width)
	filled := size * cells / capacity
	if size > 0 && filled == 0 {
		filled = 1
	}
	return LiveSlot.Render(strings.Repeat("█", filled)) +
		SlackSlot.Render(strings.Repeat("░", cells-filled))
}

// Sparkline renders values with block characters, sampled to fit width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		result.WriteRune(chars[min(max(idx, 0), len(chars)-1)])
	}
	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
