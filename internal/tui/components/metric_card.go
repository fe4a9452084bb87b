package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// Unit selects how a card formats its figures
type Unit int

const (
	Money    Unit = iota
	Percent       // already a percentage: 7.5 renders as 7.50%
	Fraction      // a table rate: 0.075 renders as 7.50%
)

func (u Unit) format(v decimal.Decimal) string {
	switch u {
	case Percent:
		return output.FormatPercentage(v)
	case Fraction:
		return output.FormatFraction(v)
	default:
		return tuistyles.FormatCurrency(v)
	}
}

// MetricCard is a bordered figure with an optional signed change and note
type MetricCard struct {
	Label string
	Value string
	Unit  Unit
	Delta *decimal.Decimal
	Note  string
	Width int
}

// NewMetricCard formats v in unit u
func NewMetricCard(label string, v decimal.Decimal, u Unit) *MetricCard {
	return &MetricCard{Label: label, Value: u.format(v), Unit: u, Width: 30}
}

// NewScoreCard shows earned points out of a maximum
func NewScoreCard(label string, score, outOf int) *MetricCard {
	return &MetricCard{Label: label, Value: fmt.Sprintf("%d/%d", score, outOf), Width: 30}
}

// WithDelta adds a change line; its sign picks the arrow and color
func (m *MetricCard) WithDelta(d decimal.Decimal) *MetricCard {
	m.Delta = &d
	return m
}

// WithNote adds a muted line under the figure
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) change() string {
	up := !m.Delta.IsNegative()
	text := m.Unit.format(*m.Delta)
	if up {
		text = "+" + text
	}
	return tuistyles.MetricTrendStyle(up).Render(tuistyles.TrendIndicator(up) + " " + text)
}

func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Delta != nil {
		content += "\n" + m.change()
	}
	if m.Note != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out left to right, columns per row
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	columns = max(columns, 1)

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			rendered = append(rendered, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
