package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioRequest is the investment simulator input
type ScenarioRequest struct {
	InitialAmount       decimal.Decimal `json:"initialAmount" yaml:"initial_amount"`
	DurationYears       int             `json:"durationYears" yaml:"duration_years"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" yaml:"monthly_contribution"`
}

// Validate checks the scenario preconditions
func (r ScenarioRequest) Validate() error {
	if err := requireNonNegative("initial_amount", r.InitialAmount); err != nil {
		return err
	}
	if err := requireHorizon("duration_years", r.DurationYears); err != nil {
		return err
	}
	return requireNonNegative("monthly_contribution", r.MonthlyContribution)
}

// TotalContributed is the initial amount plus every monthly contribution
func (r ScenarioRequest) TotalContributed() decimal.Decimal {
	months := decimal.NewFromInt(int64(r.DurationYears * 12))
	return r.InitialAmount.Add(r.MonthlyContribution.Mul(months))
}

// ScenarioResult summarizes one tier's simulated path.
// AnnualizedReturn is a percentage; MaxDrawdown and Volatility are the
// tier's table fractions.
type ScenarioResult struct {
	Tier             RiskTier        `json:"tier"`
	FinalValue       decimal.Decimal `json:"finalValue"`
	TotalReturn      decimal.Decimal `json:"totalReturn"`
	AnnualizedReturn decimal.Decimal `json:"annualizedReturn"`
	MaxDrawdown      decimal.Decimal `json:"maxDrawdown"`
	Volatility       decimal.Decimal `json:"volatility"`
}

// ProjectionPoint is one year of the three-tier projection series.
// Year 0 holds the initial amount for every tier.
type ProjectionPoint struct {
	Year         int             `json:"year"`
	Conservative decimal.Decimal `json:"conservative"`
	Moderate     decimal.Decimal `json:"moderate"`
	Aggressive   decimal.Decimal `json:"aggressive"`
}

// Value returns the balance for a tier
func (p ProjectionPoint) Value(t RiskTier) decimal.Decimal {
	switch t {
	case TierConservative:
		return p.Conservative
	case TierModerate:
		return p.Moderate
	case TierAggressive:
		return p.Aggressive
	}
	return decimal.Zero
}

// ScenarioComparison is the simulator output: a result per tier plus the
// combined yearly series.
type ScenarioComparison struct {
	Request      ScenarioRequest   `json:"request"`
	Conservative ScenarioResult    `json:"conservative"`
	Moderate     ScenarioResult    `json:"moderate"`
	Aggressive   ScenarioResult    `json:"aggressive"`
	Projections  []ProjectionPoint `json:"projections"`
}

// Result returns the summary for a tier
func (c *ScenarioComparison) Result(t RiskTier) ScenarioResult {
	switch t {
	case TierConservative:
		return c.Conservative
	case TierAggressive:
		return c.Aggressive
	default:
		return c.Moderate
	}
}

// Results returns the three summaries ordered conservative -> aggressive
func (c *ScenarioComparison) Results() []ScenarioResult {
	return []ScenarioResult{c.Conservative, c.Moderate, c.Aggressive}
}

// Series returns one tier's yearly balances
func (c *ScenarioComparison) Series(t RiskTier) []decimal.Decimal {
	values := make([]decimal.Decimal, len(c.Projections))
	for i, p := range c.Projections {
		values[i] = p.Value(t)
	}
	return values
}

// PercentileRanges holds distribution percentiles of a simulated value
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// TierTrialSummary aggregates repeated trials for one tier
type TierTrialSummary struct {
	Tier             RiskTier         `json:"tier"`
	MeanFinalValue   decimal.Decimal  `json:"meanFinalValue"`
	MedianFinalValue decimal.Decimal  `json:"medianFinalValue"`
	Percentiles      PercentileRanges `json:"percentiles"`
	// ProbabilityOfGain is the share of trials ending above the total contributed
	ProbabilityOfGain decimal.Decimal `json:"probabilityOfGain"`
}

// TrialResult is the output of repeated scenario trials
type TrialResult struct {
	Request          ScenarioRequest    `json:"request"`
	NumTrials        int                `json:"numTrials"`
	Seed             int64              `json:"seed"`
	TotalContributed decimal.Decimal    `json:"totalContributed"`
	Tiers            []TierTrialSummary `json:"tiers"`
}

// Tier returns the summary for a tier
func (r *TrialResult) Tier(t RiskTier) (TierTrialSummary, bool) {
	for _, s := range r.Tiers {
		if s.Tier == t {
			return s, true
		}
	}
	return TierTrialSummary{}, false
}
