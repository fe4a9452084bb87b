package calculation

import (
	"math"
	"math/rand"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// RandomSource yields uniform draws in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// SourceFactory hands out one independent RandomSource per risk tier
type SourceFactory func(domain.RiskTier) RandomSource

// balancePrecision keeps intermediate balances from growing unbounded digits
const balancePrecision = 10

// SeededSources returns a factory whose per-tier streams are derived from
// seed, so a run is reproducible while tiers never share draws.
func SeededSources(seed int64) SourceFactory {
	return func(t domain.RiskTier) RandomSource {
		return rand.New(rand.NewSource(seed + int64(tierIndex(t)+1)*7919))
	}
}

// SystemSources returns a factory seeded from the clock
func SystemSources() SourceFactory {
	return func(t domain.RiskTier) RandomSource {
		return rand.New(rand.NewSource(time.Now().UnixNano() + int64(tierIndex(t)+1)*7919))
	}
}

func tierIndex(t domain.RiskTier) int {
	for i, rt := range domain.RiskTiers {
		if rt == t {
			return i
		}
	}
	return len(domain.RiskTiers)
}

// ScenarioProjector simulates the three risk tiers side by side
type ScenarioProjector struct {
	sources SourceFactory
}

// NewScenarioProjector creates a projector drawing randomness from sources.
// A nil factory falls back to clock-seeded sources.
func NewScenarioProjector(sources SourceFactory) *ScenarioProjector {
	if sources == nil {
		sources = SystemSources()
	}
	return &ScenarioProjector{sources: sources}
}

// RunScenarios runs the three tiers with clock-seeded randomness
func RunScenarios(req domain.ScenarioRequest) (*domain.ScenarioComparison, error) {
	return NewScenarioProjector(nil).Run(req)
}

// Run simulates conservative, moderate and aggressive paths independently
// and combines their yearly balances into one projection series.
func (p *ScenarioProjector) Run(req domain.ScenarioRequest) (*domain.ScenarioComparison, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	series := make(map[domain.RiskTier][]decimal.Decimal, len(domain.RiskTiers))
	results := make(map[domain.RiskTier]domain.ScenarioResult, len(domain.RiskTiers))
	for _, t := range domain.RiskTiers {
		profile, _ := domain.RiskProfileFor(t)
		path := simulateTier(req, profile, p.sources(t))
		series[t] = path
		results[t] = summarizeTier(req, profile, path)
	}

	projections := make([]domain.ProjectionPoint, req.DurationYears+1)
	for year := range projections {
		projections[year] = domain.ProjectionPoint{
			Year:         year,
			Conservative: series[domain.TierConservative][year],
			Moderate:     series[domain.TierModerate][year],
			Aggressive:   series[domain.TierAggressive][year],
		}
	}

	return &domain.ScenarioComparison{
		Request:      req,
		Conservative: results[domain.TierConservative],
		Moderate:     results[domain.TierModerate],
		Aggressive:   results[domain.TierAggressive],
		Projections:  projections,
	}, nil
}

// simulateTier compounds month by month: contribute, then apply
// r = monthlyReturn + (U-0.5) * monthlyVolatility * 0.5.
// The returned slice holds the balance at the end of each year, index 0
// being the untouched initial amount.
func simulateTier(req domain.ScenarioRequest, profile domain.RiskProfile, src RandomSource) []decimal.Decimal {
	monthlyReturn := profile.AnnualReturn.Div(twelve)
	monthlyVol := decimal.NewFromFloat(profile.Volatility.InexactFloat64() / math.Sqrt(12))
	half := decimal.NewFromFloat(0.5)
	one := decimal.NewFromInt(1)

	path := make([]decimal.Decimal, 0, req.DurationYears+1)
	balance := req.InitialAmount
	path = append(path, balance)

	for year := 1; year <= req.DurationYears; year++ {
		for month := 0; month < 12; month++ {
			shock := decimal.NewFromFloat(src.Float64() - 0.5).Mul(monthlyVol).Mul(half)
			r := monthlyReturn.Add(shock)
			balance = balance.Add(req.MonthlyContribution).Mul(one.Add(r)).Round(balancePrecision)
		}
		path = append(path, balance)
	}
	return path
}

func summarizeTier(req domain.ScenarioRequest, profile domain.RiskProfile, path []decimal.Decimal) domain.ScenarioResult {
	final := path[len(path)-1]
	return domain.ScenarioResult{
		Tier:             profile.Tier,
		FinalValue:       final,
		TotalReturn:      final.Sub(req.InitialAmount),
		AnnualizedReturn: annualizedReturn(req.InitialAmount, final, len(path)),
		MaxDrawdown:      profile.MaxDrawdown,
		Volatility:       profile.Volatility,
	}
}

// annualizedReturn is ((final/initial)^(1/points) - 1) * 100 where points
// counts the yearly data points including year 0. Zero initial reports 0.
func annualizedReturn(initial, final decimal.Decimal, points int) decimal.Decimal {
	if !initial.IsPositive() || points <= 0 {
		return decimal.Zero
	}
	ratio := final.Div(initial).InexactFloat64()
	if ratio <= 0 {
		return decimal.NewFromInt(-100)
	}
	growth := math.Pow(ratio, 1/float64(points)) - 1
	return decimal.NewFromFloat(growth * 100).Round(4)
}
