package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trialRequest() domain.ScenarioRequest {
	return domain.ScenarioRequest{
		InitialAmount:       decimal.NewFromInt(10000),
		DurationYears:       30,
		MonthlyContribution: decimal.NewFromInt(200),
	}
}

func TestNewTrialRunner_Defaults(t *testing.T) {
	r := NewTrialRunner(TrialConfig{})
	cfg := r.Config()
	assert.Equal(t, DefaultTrials, cfg.NumTrials)
	assert.Positive(t, cfg.Workers)
	assert.NotZero(t, cfg.Seed)
}

func TestTrialRunner_ExpectedValueOrdering(t *testing.T) {
	r := NewTrialRunner(TrialConfig{NumTrials: 200, Seed: 2024, Workers: 4})
	res, err := r.Run(context.Background(), trialRequest())
	require.NoError(t, err)

	require.Len(t, res.Tiers, 3)
	assert.Equal(t, 200, res.NumTrials)
	assert.Equal(t, int64(2024), res.Seed)
	assert.True(t, res.TotalContributed.Equal(decimal.NewFromInt(82000)))

	cons, ok := res.Tier(domain.TierConservative)
	require.True(t, ok)
	mod, _ := res.Tier(domain.TierModerate)
	agg, _ := res.Tier(domain.TierAggressive)

	assert.True(t, cons.MeanFinalValue.LessThan(mod.MeanFinalValue), "conservative < moderate")
	assert.True(t, mod.MeanFinalValue.LessThan(agg.MeanFinalValue), "moderate < aggressive")

	for _, s := range res.Tiers {
		p := s.Percentiles
		assert.True(t, p.P10.LessThanOrEqual(p.P25))
		assert.True(t, p.P25.LessThanOrEqual(p.P50))
		assert.True(t, p.P50.LessThanOrEqual(p.P75))
		assert.True(t, p.P75.LessThanOrEqual(p.P90))
		assert.True(t, p.P50.Equal(s.MedianFinalValue))
		// thirty years of positive expected return beats the contributions
		assert.True(t, s.ProbabilityOfGain.Equal(decimal.NewFromInt(1)), "tier %s", s.Tier)
	}
}

func TestTrialRunner_IndependentOfWorkerCount(t *testing.T) {
	req := trialRequest()
	req.DurationYears = 5

	one, err := NewTrialRunner(TrialConfig{NumTrials: 40, Seed: 99, Workers: 1}).Run(context.Background(), req)
	require.NoError(t, err)
	many, err := NewTrialRunner(TrialConfig{NumTrials: 40, Seed: 99, Workers: 8}).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, one, many)
}

func TestTrialRunner_Limits(t *testing.T) {
	_, err := NewTrialRunner(TrialConfig{NumTrials: MaxTrials + 1, Seed: 1}).Run(context.Background(), trialRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewTrialRunner(TrialConfig{NumTrials: -3, Seed: 1}).Run(context.Background(), trialRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := trialRequest()
	bad.DurationYears = 0
	_, err = NewTrialRunner(TrialConfig{NumTrials: 10, Seed: 1}).Run(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTrialRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTrialRunner(TrialConfig{NumTrials: MaxTrials, Seed: 1, Workers: 1}).Run(ctx, trialRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPercentile(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.NewFromInt(30),
		decimal.NewFromInt(40), decimal.NewFromInt(50),
	}
	assert.True(t, percentile(values, 0.5).Equal(decimal.NewFromInt(30)))
	assert.True(t, percentile(values, 0.1).Equal(decimal.NewFromInt(14)))
	assert.True(t, percentile(values, 0.9).Equal(decimal.NewFromInt(46)))
	assert.True(t, percentile(values, 1).Equal(decimal.NewFromInt(50)))
	assert.True(t, percentile(nil, 0.5).IsZero())
	assert.True(t, mean(values).Equal(decimal.NewFromInt(30)))
}
