package calculation_test

import (
	"encoding/json"
	"testing"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlanFileEndToEnd loads the example plan, runs every calculator and
// renders the report through each registered formatter.
func TestPlanFileEndToEnd(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../config/testdata/plan.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	engine.Sources = calculation.SeededSources(11)

	report, err := engine.RunConfiguration(cfg, "plan.yaml")
	require.NoError(t, err)

	require.NotNil(t, report.Health)
	require.NotNil(t, report.Goal)
	require.NotNil(t, report.Scenarios)
	require.NotNil(t, report.Wealth)
	assert.NotEmpty(t, report.Assumptions)

	assert.GreaterOrEqual(t, report.Health.Score, 0)
	assert.LessOrEqual(t, report.Health.Score, 100)
	assert.Equal(t, report.Health.Breakdown.Total(), report.Health.Score)

	assert.True(t, report.Wealth.NetWorth.Equal(decimal.NewFromInt(200000)), "assets less liabilities")
	assert.NotEmpty(t, report.Scenarios.Projections)
	for _, tier := range domain.RiskTiers {
		assert.True(t, report.Scenarios.Result(tier).FinalValue.IsPositive(), "tier %s", tier)
	}

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			out, err := f.Format(report)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestPlanFileEndToEnd_SeedIsReproducible(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../config/testdata/plan.yaml")
	require.NoError(t, err)

	render := func() []byte {
		engine := calculation.NewCalculationEngine()
		a, err := engine.SeededScenarios(*cfg.Scenario, 5)
		require.NoError(t, err)
		out, err := json.Marshal(a)
		require.NoError(t, err)
		return out
	}

	assert.JSONEq(t, string(render()), string(render()))
}
