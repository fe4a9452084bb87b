package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskTier is one of the three fixed investment risk levels used by the
// goal, scenario and wealth calculators.
type RiskTier string

const (
	TierConservative RiskTier = "conservative"
	TierModerate     RiskTier = "moderate"
	TierAggressive   RiskTier = "aggressive"
)

// RiskTiers lists the tiers in ascending order of expected return.
var RiskTiers = []RiskTier{TierConservative, TierModerate, TierAggressive}

// ParseRiskTier converts user input into a RiskTier (case-insensitive)
func ParseRiskTier(s string) (RiskTier, error) {
	t := RiskTier(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", NewInvalidInputError("risk_tolerance",
			fmt.Sprintf("must be one of conservative, moderate, aggressive (got %q)", s))
	}
	return t, nil
}

// IsValid reports whether t is a known tier
func (t RiskTier) IsValid() bool {
	switch t {
	case TierConservative, TierModerate, TierAggressive:
		return true
	}
	return false
}

// Title returns the display name of the tier
func (t RiskTier) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// RiskProfile holds the return/volatility assumptions for one tier.
// AnnualReturn, Volatility and MaxDrawdown are fractions (0.08 = 8%).
type RiskProfile struct {
	Tier         RiskTier        `json:"tier" yaml:"tier"`
	AnnualReturn decimal.Decimal `json:"annualReturn" yaml:"annual_return"`
	Volatility   decimal.Decimal `json:"volatility" yaml:"volatility"`
	MaxDrawdown  decimal.Decimal `json:"maxDrawdown" yaml:"max_drawdown"`
	Description  string          `json:"description" yaml:"description"`
}

// riskProfiles is the fixed assumption table. AnnualReturn and Volatility
// increase monotonically from conservative to aggressive.
var riskProfiles = map[RiskTier]RiskProfile{
	TierConservative: {
		Tier:         TierConservative,
		AnnualReturn: decimal.NewFromFloat(0.05),
		Volatility:   decimal.NewFromFloat(0.08),
		MaxDrawdown:  decimal.NewFromFloat(0.15),
		Description:  "Capital preservation with steady, lower returns",
	},
	TierModerate: {
		Tier:         TierModerate,
		AnnualReturn: decimal.NewFromFloat(0.08),
		Volatility:   decimal.NewFromFloat(0.12),
		MaxDrawdown:  decimal.NewFromFloat(0.25),
		Description:  "Balanced growth with moderate swings",
	},
	TierAggressive: {
		Tier:         TierAggressive,
		AnnualReturn: decimal.NewFromFloat(0.11),
		Volatility:   decimal.NewFromFloat(0.18),
		MaxDrawdown:  decimal.NewFromFloat(0.40),
		Description:  "Maximum growth, accepts large drawdowns",
	},
}

// RiskProfileFor returns the assumption row for a tier
func RiskProfileFor(t RiskTier) (RiskProfile, bool) {
	p, ok := riskProfiles[t]
	return p, ok
}

// RiskProfiles returns the full table ordered conservative -> aggressive
func RiskProfiles() []RiskProfile {
	profiles := make([]RiskProfile, 0, len(RiskTiers))
	for _, t := range RiskTiers {
		profiles = append(profiles, riskProfiles[t])
	}
	return profiles
}
