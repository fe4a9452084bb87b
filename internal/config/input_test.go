package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParser_LoadFromFile_FullPlan(t *testing.T) {
	parser := NewInputParser()
	cfg, err := parser.LoadFromFile(filepath.Join("testdata", "plan.yaml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Snapshot)
	assert.True(t, cfg.Snapshot.MonthlyIncome.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, domain.RiskToleranceMedium, cfg.Snapshot.RiskTolerance)
	assert.Equal(t, "Retire at 60", cfg.Snapshot.LongTermGoals)

	require.NotNil(t, cfg.Goal)
	assert.Equal(t, domain.GoalRetirement, cfg.Goal.TargetGoal)
	assert.Equal(t, domain.TierModerate, cfg.Goal.RiskTolerance)
	assert.Equal(t, 10, cfg.Goal.TimeHorizonYears)

	require.NotNil(t, cfg.Scenario)
	assert.Equal(t, 20, cfg.Scenario.DurationYears)
	assert.True(t, cfg.Scenario.MonthlyContribution.Equal(decimal.NewFromInt(500)))

	require.NotNil(t, cfg.Wealth)
	assert.Equal(t, 65, cfg.Wealth.RetirementAge)
	assert.True(t, cfg.Wealth.InvestmentReturnPct.Equal(decimal.NewFromInt(7)))
}

func TestInputParser_LoadFromFile_PartialPlan(t *testing.T) {
	cfg, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "snapshot_only.yaml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Snapshot)
	assert.True(t, cfg.Snapshot.MonthlyIncome.Equal(decimal.RequireFromString("4200.50")))
	assert.True(t, cfg.Snapshot.EmergencyFundMonths.Equal(decimal.NewFromFloat(0.5)))
	assert.Nil(t, cfg.Goal)
	assert.Nil(t, cfg.Scenario)
	assert.Nil(t, cfg.Wealth)
}

func TestInputParser_LoadFromFile_InvalidSection(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "invalid_wealth.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid_wealth.yaml")
	assert.Contains(t, err.Error(), "retirement_age")
}

func TestInputParser_LoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInputParser_Parse(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		input   string
		invalid bool
		errText string
	}{
		{
			name:    "empty document",
			input:   "",
			invalid: true,
			errText: "plan file is empty",
		},
		{
			name:    "no sections",
			input:   "{}\n",
			invalid: true,
			errText: "at least one of",
		},
		{
			name:    "unknown key",
			input:   "scenario:\n  initial_amount: 100\n  duration_years: 2\n  monthly_contrib: 5\n",
			errText: "failed to parse YAML",
		},
		{
			name:    "bad number",
			input:   "scenario:\n  initial_amount: lots\n  duration_years: 2\n",
			errText: "failed to parse YAML",
		},
		{
			name:    "horizon too long",
			input:   "scenario:\n  initial_amount: 100\n  duration_years: 80\n",
			invalid: true,
			errText: "duration_years",
		},
		{
			name:    "unknown goal",
			input:   "goal:\n  income: 1\n  target_goal: boat\n  target_amount: 10\n  time_horizon_years: 2\n  risk_tolerance: moderate\n",
			invalid: true,
			errText: "target_goal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
			assert.Equal(t, tt.invalid, domain.IsInvalidInput(err))
		})
	}
}

func TestInputParser_ParseJSON(t *testing.T) {
	cfg, err := NewInputParser().Parse([]byte(`{"scenario": {"initial_amount": 2500, "duration_years": 3, "monthly_contribution": 50}}`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Scenario)
	assert.Equal(t, 3, cfg.Scenario.DurationYears)
}
