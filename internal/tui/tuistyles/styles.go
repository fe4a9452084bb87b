// Package tuistyles holds the colour palette and lipgloss styles shared by
// the TUI and its components.
package tuistyles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F25D94")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorWarning = lipgloss.Color("#FFB020")
	ColorDanger  = lipgloss.Color("#FF4672")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#444444")

	// One per risk tier, conservative -> aggressive
	ColorChartLine1 = lipgloss.Color("#5FAFFF")
	ColorChartLine2 = lipgloss.Color("#04B575")
	ColorChartLine3 = lipgloss.Color("#FF8700")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// MetricTrendStyle colours a trend green when it is good news
func MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for the trend direction
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a whole-dollar amount with thousands separators
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Round(0).StringFixed(0)
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return fmt.Sprintf("%s$%s", sign, whole)
}
