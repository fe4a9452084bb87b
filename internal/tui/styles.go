package tui

import "github.com/rgehrsitz/finplan/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorChartLine1 = tuistyles.ColorChartLine1
	ColorChartLine2 = tuistyles.ColorChartLine2
	ColorChartLine3 = tuistyles.ColorChartLine3

	TitleStyle       = tuistyles.TitleStyle
	SubtitleStyle    = tuistyles.SubtitleStyle
	StatusBarStyle   = tuistyles.StatusBarStyle
	BorderStyle      = tuistyles.BorderStyle
	ActiveTabStyle   = tuistyles.ActiveTabStyle
	InactiveTabStyle = tuistyles.InactiveTabStyle
	SectionStyle     = tuistyles.SectionStyle
	ErrorStyle       = tuistyles.ErrorStyle
	InfoStyle        = tuistyles.InfoStyle
)

var FormatCurrency = tuistyles.FormatCurrency
