package calculation

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultTrials is used when TrialConfig.NumTrials is zero
	DefaultTrials = 500
	// MaxTrials caps a single run
	MaxTrials = 10000

	trialSeedStride = 104729
)

// TrialConfig controls repeated scenario trials
type TrialConfig struct {
	NumTrials int
	// Seed of zero picks a clock-derived seed, reported in the result
	Seed    int64
	Workers int
}

// TrialRunner runs the scenario projector many times to estimate the
// distribution of final values per tier
type TrialRunner struct {
	config TrialConfig
}

// NewTrialRunner creates a runner, filling in defaults
func NewTrialRunner(cfg TrialConfig) *TrialRunner {
	if cfg.NumTrials == 0 {
		cfg.NumTrials = DefaultTrials
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &TrialRunner{config: cfg}
}

// Config returns the effective configuration
func (tr *TrialRunner) Config() TrialConfig {
	return tr.config
}

// Run executes the trials on a bounded worker pool. Trial i always uses the
// seed Seed + i*stride, so results do not depend on the worker count.
func (tr *TrialRunner) Run(ctx context.Context, req domain.ScenarioRequest) (*domain.TrialResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n := tr.config.NumTrials
	if n < 0 || n > MaxTrials {
		return nil, domain.NewInvalidInputError("trials",
			fmt.Sprintf("must be between 1 and %d (got %d)", MaxTrials, n))
	}

	finals := make([][]decimal.Decimal, len(domain.RiskTiers))
	for i := range finals {
		finals[i] = make([]decimal.Decimal, n)
	}

	jobs := make(chan int)
	errCh := make(chan error, tr.config.Workers)
	var wg sync.WaitGroup

	for w := 0; w < tr.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range jobs {
				seed := tr.config.Seed + int64(trial)*trialSeedStride
				comparison, err := NewScenarioProjector(SeededSources(seed)).Run(req)
				if err != nil {
					errCh <- fmt.Errorf("trial %d: %w", trial, err)
					return
				}
				// each trial owns its own index, no lock needed
				for i, t := range domain.RiskTiers {
					finals[i][trial] = comparison.Result(t).FinalValue
				}
			}
		}()
	}

	var runErr error
feed:
	for trial := 0; trial < n; trial++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		case err := <-errCh:
			runErr = err
			break feed
		case jobs <- trial:
		}
	}
	close(jobs)
	wg.Wait()

	if runErr == nil {
		select {
		case runErr = <-errCh:
		default:
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	contributed := req.TotalContributed()
	result := &domain.TrialResult{
		Request:          req,
		NumTrials:        n,
		Seed:             tr.config.Seed,
		TotalContributed: contributed,
		Tiers:            make([]domain.TierTrialSummary, 0, len(domain.RiskTiers)),
	}
	for i, t := range domain.RiskTiers {
		result.Tiers = append(result.Tiers, summarizeTrials(t, finals[i], contributed))
	}
	return result, nil
}

func summarizeTrials(t domain.RiskTier, values []decimal.Decimal, contributed decimal.Decimal) domain.TierTrialSummary {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	gains := 0
	for _, v := range sorted {
		if v.GreaterThan(contributed) {
			gains++
		}
	}

	summary := domain.TierTrialSummary{
		Tier:             t,
		MeanFinalValue:   mean(sorted),
		MedianFinalValue: percentile(sorted, 0.5),
		Percentiles: domain.PercentileRanges{
			P10: percentile(sorted, 0.10),
			P25: percentile(sorted, 0.25),
			P50: percentile(sorted, 0.50),
			P75: percentile(sorted, 0.75),
			P90: percentile(sorted, 0.90),
		},
		ProbabilityOfGain: decimal.Zero,
	}
	if len(sorted) > 0 {
		summary.ProbabilityOfGain = decimal.NewFromInt(int64(gains)).Div(decimal.NewFromInt(int64(len(sorted))))
	}
	return summary
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// percentile interpolates linearly between the closest ranks of a sorted slice
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	index := p * float64(len(sorted)-1)
	lo := int(index)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := decimal.NewFromFloat(index - float64(lo)).Round(12)
	if frac.IsZero() {
		return sorted[lo]
	}
	return sorted[lo].Add(sorted[lo+1].Sub(sorted[lo]).Mul(frac))
}
