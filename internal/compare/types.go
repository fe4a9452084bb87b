package compare

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind identifies what a comparison set compares
type Kind string

const (
	KindTiers  Kind = "tiers"
	KindWhatIf Kind = "what-if"
)

// ComparisonResult represents a single compared outcome with calculated metrics.
// AnnualizedReturn is a percentage; MaxDrawdown is a fraction.
type ComparisonResult struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Key Metrics
	FinalValue       decimal.Decimal `json:"finalValue"`
	AnnualizedReturn decimal.Decimal `json:"annualizedReturn"`
	MaxDrawdown      decimal.Decimal `json:"maxDrawdown"`

	// Comparison to Base
	FinalDiffFromBase    decimal.Decimal `json:"finalDiffFromBase"`
	FinalPctFromBase     decimal.Decimal `json:"finalPctFromBase"`
	ReturnDiffFromBase   decimal.Decimal `json:"returnDiffFromBase"`
	DrawdownDiffFromBase decimal.Decimal `json:"drawdownDiffFromBase"`

	// What-if specifics (extracted from the transformed profile for display)
	RetirementAge  int             `json:"retirementAge,omitempty"`
	MonthlySavings decimal.Decimal `json:"monthlySavings"`
}

// ComparisonSet represents a base outcome and its alternatives
type ComparisonSet struct {
	Kind               Kind               `json:"kind"`
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// All returns the base followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from calculator outputs
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// FromScenario converts one simulated tier into a comparison row
func (mc *MetricsCalculator) FromScenario(r domain.ScenarioResult) ComparisonResult {
	desc := ""
	if p, ok := domain.RiskProfileFor(r.Tier); ok {
		desc = p.Description
	}
	return ComparisonResult{
		Name:             r.Tier.Title(),
		Description:      desc,
		FinalValue:       r.FinalValue,
		AnnualizedReturn: r.AnnualizedReturn,
		MaxDrawdown:      r.MaxDrawdown,
	}
}

// FromWealth converts a wealth projection into a comparison row
func (mc *MetricsCalculator) FromWealth(name string, p domain.WealthProfile, plan *domain.WealthPlan) ComparisonResult {
	result := ComparisonResult{
		Name:             name,
		FinalValue:       plan.RetirementTotal(),
		AnnualizedReturn: p.InvestmentReturnPct,
		RetirementAge:    p.RetirementAge,
		MonthlySavings:   p.MonthlySavings,
	}
	if rp, ok := domain.RiskProfileFor(p.RiskTolerance); ok {
		result.MaxDrawdown = rp.MaxDrawdown
	}
	return result
}

// CalculateComparison computes comparison metrics between an alternative and a base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.FinalDiffFromBase = alt.FinalValue.Sub(base.FinalValue)

	if !base.FinalValue.IsZero() {
		alt.FinalPctFromBase = alt.FinalDiffFromBase.
			Div(base.FinalValue.Abs()).
			Mul(decimal.NewFromInt(100)).
			Round(4)
	}

	alt.ReturnDiffFromBase = alt.AnnualizedReturn.Sub(base.AnnualizedReturn)
	alt.DrawdownDiffFromBase = alt.MaxDrawdown.Sub(base.MaxDrawdown)

	return alt
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	if compSet.Kind == KindWhatIf {
		return whatIfRecommendations(compSet)
	}

	all := compSet.All()

	// Find highest final value
	best := 0
	for i := range all {
		if all[i].FinalValue.GreaterThan(all[best].FinalValue) {
			best = i
		}
	}
	recommendations = append(recommendations,
		"Highest Final Value: "+all[best].Name+" ends at $"+formatDecimal(all[best].FinalValue))

	// Find lowest drawdown
	safest := 0
	for i := range all {
		if all[i].MaxDrawdown.LessThan(all[safest].MaxDrawdown) {
			safest = i
		}
	}
	recommendations = append(recommendations,
		"Lowest Drawdown: "+all[safest].Name+" assumes a "+
			all[safest].MaxDrawdown.Mul(decimal.NewFromInt(100)).StringFixed(0)+"% worst-case decline")

	// Find best final value per unit of drawdown
	efficient := -1
	var bestRatio decimal.Decimal
	for i := range all {
		if !all[i].MaxDrawdown.IsPositive() {
			continue
		}
		ratio := all[i].FinalValue.Div(all[i].MaxDrawdown)
		if efficient < 0 || ratio.GreaterThan(bestRatio) {
			efficient, bestRatio = i, ratio
		}
	}
	if efficient >= 0 {
		recommendations = append(recommendations,
			"Best Risk-Adjusted: "+all[efficient].Name+" returns the most final value per unit of drawdown")
	}

	return recommendations
}

func whatIfRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	alts := compSet.AlternativeResults

	// Find best outcome
	best := -1
	for i := range alts {
		if alts[i].FinalDiffFromBase.IsPositive() &&
			(best < 0 || alts[i].FinalValue.GreaterThan(alts[best].FinalValue)) {
			best = i
		}
	}
	if best >= 0 {
		recommendations = append(recommendations,
			"Best Outcome: "+alts[best].Name+" adds $"+formatDecimal(alts[best].FinalDiffFromBase)+
				" at retirement versus the base plan")
	} else {
		recommendations = append(recommendations,
			"Base plan already has the highest projected total at retirement")
	}

	// Find largest downside
	worst := -1
	for i := range alts {
		if alts[i].FinalDiffFromBase.IsNegative() &&
			(worst < 0 || alts[i].FinalValue.LessThan(alts[worst].FinalValue)) {
			worst = i
		}
	}
	if worst >= 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Largest Downside: %s reduces the retirement total by $%s (%s%%)",
				alts[worst].Name, formatDecimal(alts[worst].FinalDiffFromBase.Abs()),
				alts[worst].FinalPctFromBase.Abs().StringFixed(1)))
	}

	return recommendations
}

// formatDecimal formats a decimal for display (in thousands or millions)
func formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
