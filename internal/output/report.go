package output

import (
	"os"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// SaveConfiguration saves a plan to a YAML file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatFraction formats a fraction (0.08) as a percentage (8.00%)
func FormatFraction(amount decimal.Decimal) string {
	return FormatPercentage(amount.Mul(hundred))
}
