package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// ScoreBar shows points earned out of a maximum, e.g. one component of the
// health score
type ScoreBar struct {
	Label string
	Score int
	Max   int
	Width int
}

// NewScoreBar creates a score bar
func NewScoreBar(label string, score, maxScore int) *ScoreBar {
	return &ScoreBar{
		Label: label,
		Score: score,
		Max:   maxScore,
		Width: 25,
	}
}

// WithWidth sets the bar width
func (b *ScoreBar) WithWidth(width int) *ScoreBar {
	b.Width = width
	return b
}

// Filled returns how many cells of the bar are filled
func (b *ScoreBar) Filled() int {
	if b.Max <= 0 || b.Score <= 0 {
		return 0
	}
	filled := b.Width * b.Score / b.Max
	return min(filled, b.Width)
}

// Render returns the styled bar
func (b *ScoreBar) Render() string {
	filled := b.Filled()
	empty := b.Width - filled

	// Colour by how much of the maximum was earned
	color := tuistyles.ColorDanger
	switch {
	case b.Max > 0 && b.Score*3 >= b.Max*2:
		color = tuistyles.ColorSuccess
	case b.Max > 0 && b.Score*3 >= b.Max:
		color = tuistyles.ColorWarning
	}
	barStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)
	labelStyle := tuistyles.MetricLabelStyle.Width(18)

	var content strings.Builder
	content.WriteString(labelStyle.Render(b.Label))
	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("] ")
	content.WriteString(tuistyles.MetricValueStyle.Render(fmt.Sprintf("%d/%d", b.Score, b.Max)))
	return content.String()
}
