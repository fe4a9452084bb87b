package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

const (
	yAxisWidth   = 12
	maxXLabels   = 5
	minRowsDrawn = 2
)

var (
	seriesMarks = []rune{'●', '■', '▲', '♦'}
	ten         = decimal.NewFromInt(10)
	thousand    = decimal.NewFromInt(1000)
	million     = decimal.NewFromInt(1000000)
)

// Series is one balance line on a chart
type Series struct {
	Name   string
	Values []decimal.Decimal
	Color  lipgloss.Color
}

// ASCIIChart plots money series against a shared Y axis
type ASCIIChart struct {
	Title  string
	Series []Series
	Labels []string // X-axis labels, spread evenly across the width
	XAxis  string
	Width  int
	Height int
}

// NewASCIIChart creates an empty 60x15 chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Width:  60,
		Height: 15,
	}
}

// AddSeries appends a line of balances
func (c *ASCIIChart) AddSeries(name string, values []decimal.Decimal, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, Series{Name: name, Values: values, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions, Y-axis included
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxis names the X axis below the labels
func (c *ASCIIChart) WithXAxis(name string) *ASCIIChart {
	c.XAxis = name
	return c
}

// Render draws the chart, or a placeholder when there is nothing to plot
func (c *ASCIIChart) Render() string {
	if !c.hasValues() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	b.WriteString(c.plot(lo, hi))

	if c.XAxis != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxis))
	}
	if len(c.Series) > 1 {
		b.WriteString("\n\n")
		b.WriteString(c.legend())
	}
	return b.String()
}

func (c *ASCIIChart) hasValues() bool {
	for _, s := range c.Series {
		if len(s.Values) > 0 {
			return true
		}
	}
	return false
}

func (c *ASCIIChart) rows() int {
	return max(c.Height, minRowsDrawn)
}

func (c *ASCIIChart) columns() int {
	return max(c.Width-yAxisWidth, 1)
}

// bounds returns the padded value range across every series. A flat range
// is widened so the line sits mid-chart.
func (c *ASCIIChart) bounds() (decimal.Decimal, decimal.Decimal) {
	var lo, hi decimal.Decimal
	seen := false
	for _, s := range c.Series {
		for _, v := range s.Values {
			if !seen {
				lo, hi, seen = v, v, true
				continue
			}
			lo = decimal.Min(lo, v)
			hi = decimal.Max(hi, v)
		}
	}
	if !seen {
		return decimal.Zero, decimal.NewFromInt(1)
	}

	pad := hi.Sub(lo).Div(ten)
	if pad.IsZero() {
		pad = decimal.Max(hi.Abs().Div(ten), decimal.NewFromInt(1))
	}
	return lo.Sub(pad), hi.Add(pad)
}

// row maps v onto the grid, row 0 being the top
func (c *ASCIIChart) row(v, lo, hi decimal.Decimal) int {
	last := c.rows() - 1
	offset := v.Sub(lo).Div(hi.Sub(lo)).Mul(decimal.NewFromInt(int64(last))).IntPart()
	return last - int(offset)
}

// column maps index i of n onto width cells
func column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return i * (width - 1) / (n - 1)
}

func (c *ASCIIChart) plot(lo, hi decimal.Decimal) string {
	height, width := c.rows(), c.columns()
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}

	for idx, s := range c.Series {
		mark := seriesMarks[idx%len(seriesMarks)]
		prevX, prevY := 0, 0
		for i, v := range s.Values {
			x, y := column(i, len(s.Values), width), c.row(v, lo, hi)
			grid[y][x] = mark
			if i > 0 {
				connect(grid, prevX, prevY, x, y, mark)
			}
			prevX, prevY = x, y
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	step := hi.Sub(lo).Div(decimal.NewFromInt(int64(height - 1)))

	var b strings.Builder
	for y, line := range grid {
		b.WriteString(axis.Render(formatChartValue(hi.Sub(step.Mul(decimal.NewFromInt(int64(y)))))))
		b.WriteString(" │ ")
		b.WriteString(string(line))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", width))
	b.WriteString("\n")

	if labels := c.xLabels(width); labels != "" {
		b.WriteString(strings.Repeat(" ", yAxisWidth+3))
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(labels))
	}
	return b.String()
}

// connect fills the cells between two plotted points (Bresenham)
func connect(grid [][]rune, x0, y0, x1, y1 int, mark rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx - dy
	for {
		if grid[y0][x0] == ' ' {
			grid[y0][x0] = mark
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// xLabels places at most maxXLabels labels at their columns, skipping any
// that would overlap the previous one
func (c *ASCIIChart) xLabels(width int) string {
	n := len(c.Labels)
	if n == 0 {
		return ""
	}
	stride := max((n+maxXLabels-1)/maxXLabels, 1)

	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i := 0; i < n; i += stride {
		label := []rune(c.Labels[i])
		x := min(column(i, n, width), max(width-len(label), 0))
		if x < next {
			continue
		}
		copy(line[x:], label)
		next = x + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func (c *ASCIIChart) legend() string {
	items := make([]string, 0, len(c.Series))
	name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
	for i, s := range c.Series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesMarks[i%len(seriesMarks)]))
		items = append(items, fmt.Sprintf("%s %s", mark, name.Render(s.Name)))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue abbreviates a Y-axis balance ($950, $25K, $1.5M)
func formatChartValue(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	switch {
	case v.GreaterThanOrEqual(million):
		return sign + "$" + v.Div(million).StringFixed(1) + "M"
	case v.GreaterThanOrEqual(thousand):
		return sign + "$" + v.Div(thousand).StringFixed(0) + "K"
	default:
		return sign + "$" + v.StringFixed(0)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
