package calculation

import (
	"strconv"
	"strings"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGoal() domain.GoalRequest {
	return domain.GoalRequest{
		Age:              35,
		Income:           decimal.NewFromInt(96000),
		CurrentSavings:   decimal.Zero,
		TargetGoal:       domain.GoalRetirement,
		TargetAmount:     decimal.NewFromInt(120000),
		TimeHorizonYears: 10,
		RiskTolerance:    domain.TierModerate,
	}
}

func TestGeneratePlan_LinearTrajectory(t *testing.T) {
	plan, err := GeneratePlan(sampleGoal())
	require.NoError(t, err)

	assert.True(t, plan.MonthlySavings.Equal(decimal.NewFromInt(1000)))
	require.Len(t, plan.MonthlyPlans, 120)

	last := plan.MonthlyPlans[119]
	assert.Equal(t, 120, last.Month)
	assert.True(t, last.Savings.Equal(decimal.NewFromInt(72000)), "savings %s", last.Savings)
	assert.True(t, last.Investments.Equal(decimal.NewFromInt(48240)), "investments %s", last.Investments)
	assert.True(t, last.Total.Equal(decimal.NewFromInt(120240)), "total %s", last.Total)
	assert.True(t, plan.FinalTotal().Equal(decimal.NewFromInt(120240)))

	assert.True(t, plan.ExpectedAnnualReturn.Equal(decimal.NewFromFloat(0.08)))
	assert.Contains(t, plan.Summary, "$1000.00 per month")
}

func TestGeneratePlan_MilestoneLabels(t *testing.T) {
	plan, err := GeneratePlan(sampleGoal())
	require.NoError(t, err)

	for _, p := range plan.MonthlyPlans {
		if p.Month%12 == 0 {
			assert.Equal(t, "Year "+strconv.Itoa(p.Month/12)+" milestone", p.Milestone)
		} else {
			assert.Empty(t, p.Milestone)
		}
	}

	require.Len(t, plan.Milestones, 3)
	assert.Contains(t, plan.Milestones[0], "Month 12")
	assert.Contains(t, plan.Milestones[1], "Month 24")
	assert.Contains(t, plan.Milestones[2], "Month 120: projected total $120240.00")
}

func TestGeneratePlan_ShortHorizonMilestonesDeduplicated(t *testing.T) {
	req := sampleGoal()
	req.TimeHorizonYears = 1
	plan, err := GeneratePlan(req)
	require.NoError(t, err)

	require.Len(t, plan.Milestones, 1)
	assert.Contains(t, plan.Milestones[0], "Month 12")
}

func TestGeneratePlan_AggressiveBonus(t *testing.T) {
	req := sampleGoal()
	req.RiskTolerance = domain.TierAggressive
	plan, err := GeneratePlan(req)
	require.NoError(t, err)

	// 1000 * 0.4 * 120 * 1.01
	assert.True(t, plan.MonthlyPlans[119].Investments.Equal(decimal.NewFromInt(48480)))
}

func TestGeneratePlan_TotalNonDecreasing(t *testing.T) {
	req := sampleGoal()
	req.CurrentSavings = decimal.NewFromInt(5000)
	plan, err := GeneratePlan(req)
	require.NoError(t, err)

	for i := 1; i < len(plan.MonthlyPlans); i++ {
		assert.True(t, plan.MonthlyPlans[i].Total.GreaterThanOrEqual(plan.MonthlyPlans[i-1].Total))
	}
}

func TestGeneratePlan_AlreadyPastTarget(t *testing.T) {
	req := sampleGoal()
	req.CurrentSavings = decimal.NewFromInt(150000)
	plan, err := GeneratePlan(req)
	require.NoError(t, err)

	assert.True(t, plan.MonthlySavings.IsNegative(), "negative monthly savings is reported as-is")
	assert.Contains(t, plan.Recommendations[0], "already cover the target")
}

func TestGeneratePlan_AffordabilityWarning(t *testing.T) {
	req := sampleGoal()
	req.Income = decimal.NewFromInt(18000) // 1500/month, half is 750
	plan, err := GeneratePlan(req)
	require.NoError(t, err)

	found := false
	for _, r := range plan.Recommendations {
		if strings.Contains(r, "exceed half of monthly income") {
			found = true
		}
	}
	assert.True(t, found, "expected affordability warning in %v", plan.Recommendations)
}

func TestGeneratePlan_InvalidHorizon(t *testing.T) {
	req := sampleGoal()
	req.TimeHorizonYears = 0
	_, err := GeneratePlan(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
