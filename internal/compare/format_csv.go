package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Name",
		"Type",
		"Final Value",
		"Annualized Return %",
		"Max Drawdown",
		"Retirement Age",
		"Monthly Savings",
		"Final Diff from Base",
		"Final % Change",
		"Return Diff from Base",
		"Drawdown Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.Name,
		rowType,
		result.FinalValue.StringFixed(2),
		result.AnnualizedReturn.StringFixed(4),
		result.MaxDrawdown.StringFixed(2),
		formatInt(result.RetirementAge),
		result.MonthlySavings.StringFixed(2),
		result.FinalDiffFromBase.StringFixed(2),
		result.FinalPctFromBase.StringFixed(2),
		result.ReturnDiffFromBase.StringFixed(4),
		result.DrawdownDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
