package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

// ScoreBar renders a labelled horizontal bar for a 0-100 score.
func ScoreBar(label string, score, width int) string {
	var result string
	if label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	suffix := fmt.Sprintf("  %3d%%", score)
	barWidth := max(width-lipgloss.Width(result)-len(suffix), 4)
	filled := min(max(barWidth*score/100, 0), barWidth)

	fill := theme.Secondary
	if score < 60 {
		fill = theme.Accent
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	return result
}
