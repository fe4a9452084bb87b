package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing outcomes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	title := "RISK TIER COMPARISON"
	if compSet.Kind == KindWhatIf {
		title = "WHAT-IF COMPARISON"
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 15

	if compSet.Kind == KindWhatIf {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			nameWidth, "Scenario",
			numWidth, "Retire Age",
			numWidth, "Monthly Saving",
			numWidth, "At Retirement"))
	} else {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			nameWidth, "Tier",
			numWidth, "Final Value",
			numWidth, "Ann. Return",
			numWidth, "Max Drawdown"))
	}
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.Kind, compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(compSet.Kind, &compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Final Value:      %s$%s (%s%%)\n",
				deltaSymbol(alt.FinalDiffFromBase),
				formatDecimal(alt.FinalDiffFromBase.Abs()),
				alt.FinalPctFromBase.StringFixed(1)))

			if !alt.ReturnDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Return:           %s%s pts\n",
					deltaSymbol(alt.ReturnDiffFromBase), alt.ReturnDiffFromBase.Abs().StringFixed(2)))
			}

			if !alt.DrawdownDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Drawdown:         %s%s pts\n",
					deltaSymbol(alt.DrawdownDiffFromBase),
					alt.DrawdownDiffFromBase.Abs().Mul(decimal.NewFromInt(100)).StringFixed(0)))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single comparison row
func (tf *TableFormatter) formatRow(kind Kind, result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}

	if kind == KindWhatIf {
		return fmt.Sprintf("%-*s %*d %*s %*s\n",
			nameWidth, truncate(name, nameWidth),
			numWidth, result.RetirementAge,
			numWidth, money(result.MonthlySavings),
			numWidth, money(result.FinalValue))
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, truncate(name, nameWidth),
		numWidth, money(result.FinalValue),
		numWidth, result.AnnualizedReturn.StringFixed(2)+"%",
		numWidth, result.MaxDrawdown.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%")
}

// FormatCompact creates a compact single-line summary of each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.FinalDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", formatDecimal(alt.FinalDiffFromBase))
		} else if alt.FinalDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", formatDecimal(alt.FinalDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}

// money renders a value in K/M units with its sign ahead of the dollar sign
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + formatDecimal(d.Abs())
	}
	return "$" + formatDecimal(d)
}

// deltaSymbol returns "+" for positive deltas, "-" for negative and a space for zero
func deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
