package calculation

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() domain.FinancialSnapshot {
	return domain.FinancialSnapshot{
		MonthlyIncome:       decimal.NewFromInt(5000),
		MonthlyExpenses:     decimal.NewFromInt(3000),
		TotalDebt:           decimal.NewFromInt(10000),
		SavingsAmount:       decimal.NewFromInt(5000),
		EmergencyFundMonths: decimal.NewFromInt(4),
		ShortTermGoals:      "x",
		LongTermGoals:       "y",
		RiskTolerance:       domain.RiskToleranceMedium,
	}
}

func TestComputeHealthScore_ReferenceHousehold(t *testing.T) {
	a, err := ComputeHealthScore(sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 25, a.Breakdown.SavingsRatePoints, "40% savings rate")
	assert.Equal(t, 25, a.Breakdown.DebtManagementPoints, "debt ratio ~0.167")
	assert.Equal(t, 16, a.Breakdown.EmergencyFundPoints, "4 months")
	assert.Equal(t, 12, a.Breakdown.ExpenseRatioPoints, "expense ratio 0.6")
	assert.Equal(t, 15, a.Breakdown.GoalPlanningPoints, "both goals set")
	assert.Equal(t, 93, a.Score)
	assert.Equal(t, domain.CategoryExcellent, a.Category)

	assert.True(t, a.Breakdown.SavingsRate.Equal(decimal.NewFromFloat(0.4)))
	assert.True(t, a.Breakdown.ExpenseRatio.Equal(decimal.NewFromFloat(0.6)))
	assert.Empty(t, a.RiskAreas)
	assert.Len(t, a.Strengths, 2, "savings and debt strengths")

	// emergency fund under 6 months plus diversification for positive savings
	require.Len(t, a.Recommendations, 2)
	assert.Contains(t, a.Recommendations[0], "emergency fund")
	assert.Contains(t, a.Recommendations[1], "Diversify")
}

func TestComputeHealthScore_StrugglingHousehold(t *testing.T) {
	s := domain.FinancialSnapshot{
		MonthlyIncome:   decimal.NewFromInt(1000),
		MonthlyExpenses: decimal.NewFromInt(1200),
		TotalDebt:       decimal.NewFromInt(20000),
	}
	a, err := ComputeHealthScore(s)
	require.NoError(t, err)

	assert.Equal(t, 0, a.Breakdown.SavingsRatePoints)
	assert.Equal(t, 5, a.Breakdown.DebtManagementPoints)
	assert.Equal(t, 0, a.Breakdown.EmergencyFundPoints)
	assert.Equal(t, 3, a.Breakdown.ExpenseRatioPoints)
	assert.Equal(t, 0, a.Breakdown.GoalPlanningPoints)
	assert.Equal(t, 8, a.Score)
	assert.Equal(t, domain.CategoryPoor, a.Category)

	require.Len(t, a.RiskAreas, 4)
	assert.Contains(t, a.RiskAreas[0], "Low savings rate")
	assert.Contains(t, a.RiskAreas[1], "exceeds annual income")
	assert.Contains(t, a.RiskAreas[2], "Emergency fund")
	assert.Equal(t, "Monthly expenses exceed monthly income", a.RiskAreas[3])
	assert.Empty(t, a.Strengths)

	// savings, debt, emergency, expenses, goals; no diversification without savings
	require.Len(t, a.Recommendations, 5)
	assert.Contains(t, a.Recommendations[0], "savings rate")
	assert.Contains(t, a.Recommendations[1], "debt")
	assert.Contains(t, a.Recommendations[2], "emergency fund")
	assert.Contains(t, a.Recommendations[3], "expenses")
	assert.Contains(t, a.Recommendations[4], "goals")
}

func TestComputeHealthScore_TierBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		expenses int64
		points   int
	}{
		{"25% saved", 7500, 25},
		{"20% saved", 8000, 22},
		{"15% saved", 8500, 20},
		{"10% saved", 9000, 15},
		{"5% saved", 9500, 10},
		{"1% saved", 9900, 5},
		{"nothing saved", 10000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSnapshot()
			s.MonthlyIncome = decimal.NewFromInt(10000)
			s.MonthlyExpenses = decimal.NewFromInt(tt.expenses)
			a, err := ComputeHealthScore(s)
			require.NoError(t, err)
			assert.Equal(t, tt.points, a.Breakdown.SavingsRatePoints)
		})
	}
}

func TestComputeHealthScore_EmergencyFundTiers(t *testing.T) {
	cases := map[float64]int{0: 0, 0.5: 4, 1: 8, 3: 12, 4: 16, 6: 20, 12: 20}
	for months, want := range cases {
		s := sampleSnapshot()
		s.EmergencyFundMonths = decimal.NewFromFloat(months)
		a, err := ComputeHealthScore(s)
		require.NoError(t, err)
		assert.Equal(t, want, a.Breakdown.EmergencyFundPoints, "months=%v", months)
	}
}

func TestComputeHealthScore_GoalText(t *testing.T) {
	tests := []struct {
		name      string
		shortTerm string
		longTerm  string
		want      int
	}{
		{"both", "x", "y", 15},
		{"only long term", "", "y", 8},
		{"only short term", "x", "", 8},
		{"neither", "", "", 0},
		{"whitespace is text", "  ", "y", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSnapshot()
			s.ShortTermGoals = tt.shortTerm
			s.LongTermGoals = tt.longTerm
			a, err := ComputeHealthScore(s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Breakdown.GoalPlanningPoints)
		})
	}
}

func TestComputeHealthScore_BoundsAndIdempotence(t *testing.T) {
	for income := int64(500); income <= 20000; income += 1500 {
		for expenses := int64(0); expenses <= 25000; expenses += 2500 {
			s := sampleSnapshot()
			s.MonthlyIncome = decimal.NewFromInt(income)
			s.MonthlyExpenses = decimal.NewFromInt(expenses)
			a, err := ComputeHealthScore(s)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, a.Score, 0)
			assert.LessOrEqual(t, a.Score, 100)
			assert.Equal(t, domain.CategoryForScore(a.Score), a.Category)

			again, err := ComputeHealthScore(s)
			require.NoError(t, err)
			assert.Equal(t, a, again)
		}
	}
}

func TestComputeHealthScore_InvalidInput(t *testing.T) {
	s := sampleSnapshot()
	s.MonthlyIncome = decimal.NewFromInt(-1)
	_, err := ComputeHealthScore(s)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
