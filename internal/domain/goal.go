package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GoalType is what the user is saving toward
type GoalType string

const (
	GoalRetirement GoalType = "retirement"
	GoalHome       GoalType = "home"
	GoalEducation  GoalType = "education"
	GoalWealth     GoalType = "wealth"
)

// IsValid reports whether g is a known goal type
func (g GoalType) IsValid() bool {
	switch g {
	case GoalRetirement, GoalHome, GoalEducation, GoalWealth:
		return true
	}
	return false
}

// GoalRequest is the budget planner input. Income is annual.
type GoalRequest struct {
	Age              int             `json:"age" yaml:"age"`
	Income           decimal.Decimal `json:"income" yaml:"income"`
	CurrentSavings   decimal.Decimal `json:"currentSavings" yaml:"current_savings"`
	TargetGoal       GoalType        `json:"targetGoal" yaml:"target_goal"`
	TargetAmount     decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	TimeHorizonYears int             `json:"timeHorizonYears" yaml:"time_horizon_years"`
	RiskTolerance    RiskTier        `json:"riskTolerance" yaml:"risk_tolerance"`
}

// Validate checks the goal request preconditions. A target below current
// savings is allowed and yields negative monthly savings.
func (g GoalRequest) Validate() error {
	if g.Age < 0 {
		return NewInvalidInputError("age", fmt.Sprintf("cannot be negative (got %d)", g.Age))
	}
	if err := requireNonNegative("income", g.Income); err != nil {
		return err
	}
	if err := requireNonNegative("current_savings", g.CurrentSavings); err != nil {
		return err
	}
	if !g.TargetGoal.IsValid() {
		return NewInvalidInputError("target_goal",
			fmt.Sprintf("must be one of retirement, home, education, wealth (got %q)", g.TargetGoal))
	}
	if err := requirePositive("target_amount", g.TargetAmount); err != nil {
		return err
	}
	if err := requireHorizon("time_horizon_years", g.TimeHorizonYears); err != nil {
		return err
	}
	if !g.RiskTolerance.IsValid() {
		return NewInvalidInputError("risk_tolerance",
			fmt.Sprintf("must be one of %s (got %q)", tierList(), g.RiskTolerance))
	}
	return nil
}

// MonthlyPlanPoint is one month of the goal trajectory
type MonthlyPlanPoint struct {
	Month       int             `json:"month"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
	Total       decimal.Decimal `json:"total"`
	Milestone   string          `json:"milestone,omitempty"`
}

// GoalPlan is the month-by-month plan produced for a GoalRequest
type GoalPlan struct {
	Summary              string             `json:"summary"`
	MonthlySavings       decimal.Decimal    `json:"monthlySavings"`
	ExpectedAnnualReturn decimal.Decimal    `json:"expectedAnnualReturn"`
	MonthlyPlans         []MonthlyPlanPoint `json:"monthlyPlans"`
	Recommendations      []string           `json:"recommendations"`
	Milestones           []string           `json:"milestones"`
}

// FinalTotal returns the projected total at the end of the horizon
func (p *GoalPlan) FinalTotal() decimal.Decimal {
	if p == nil || len(p.MonthlyPlans) == 0 {
		return decimal.Zero
	}
	return p.MonthlyPlans[len(p.MonthlyPlans)-1].Total
}

func tierList() string {
	names := make([]string, 0, len(RiskTiers))
	for _, t := range RiskTiers {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
