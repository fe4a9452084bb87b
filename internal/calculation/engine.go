package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// CalculationEngine validates inputs at the boundary, runs the calculators
// and logs what it does. The calculators themselves stay pure.
type CalculationEngine struct {
	Logger  Logger
	Sources SourceFactory
	Now     func() time.Time
}

// NewCalculationEngine creates an engine with a no-op logger and
// clock-seeded scenario randomness
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger sets the logger; nil installs NopLogger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// HealthScore scores a financial snapshot
func (ce *CalculationEngine) HealthScore(s domain.FinancialSnapshot) (*domain.HealthAssessment, error) {
	a, err := ComputeHealthScore(s)
	if err != nil {
		ce.Logger.Warnf("health score rejected: %v", err)
		return nil, fmt.Errorf("health score: %w", err)
	}
	ce.Logger.Debugf("health score %d (%s): savings=%d debt=%d emergency=%d expenses=%d goals=%d",
		a.Score, a.Category, a.Breakdown.SavingsRatePoints, a.Breakdown.DebtManagementPoints,
		a.Breakdown.EmergencyFundPoints, a.Breakdown.ExpenseRatioPoints, a.Breakdown.GoalPlanningPoints)
	return a, nil
}

// GoalPlan builds the month-by-month plan for a goal
func (ce *CalculationEngine) GoalPlan(req domain.GoalRequest) (*domain.GoalPlan, error) {
	plan, err := GeneratePlan(req)
	if err != nil {
		ce.Logger.Warnf("goal plan rejected: %v", err)
		return nil, fmt.Errorf("goal plan: %w", err)
	}
	ce.Logger.Debugf("goal plan: %d months, monthly savings %s, final total %s",
		len(plan.MonthlyPlans), plan.MonthlySavings.StringFixed(2), plan.FinalTotal().StringFixed(2))
	return plan, nil
}

// Scenarios runs the three-tier investment simulation
func (ce *CalculationEngine) Scenarios(req domain.ScenarioRequest) (*domain.ScenarioComparison, error) {
	c, err := NewScenarioProjector(ce.Sources).Run(req)
	if err != nil {
		ce.Logger.Warnf("scenario simulation rejected: %v", err)
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	for _, r := range c.Results() {
		ce.Logger.Debugf("scenario %s: final %s, annualized %s%%",
			r.Tier, r.FinalValue.StringFixed(2), r.AnnualizedReturn.StringFixed(2))
	}
	return c, nil
}

// SeededScenarios runs the simulation with per-tier streams derived from
// seed. A zero seed uses the engine's own sources.
func (ce *CalculationEngine) SeededScenarios(req domain.ScenarioRequest, seed int64) (*domain.ScenarioComparison, error) {
	if seed == 0 {
		return ce.Scenarios(req)
	}
	seeded := *ce
	seeded.Sources = SeededSources(seed)
	return seeded.Scenarios(req)
}

// Trials runs repeated scenario simulations on a worker pool
func (ce *CalculationEngine) Trials(ctx context.Context, req domain.ScenarioRequest, cfg TrialConfig) (*domain.TrialResult, error) {
	runner := NewTrialRunner(cfg)
	effective := runner.Config()
	ce.Logger.Infof("running %d trials (seed %d, %d workers)", effective.NumTrials, effective.Seed, effective.Workers)

	result, err := runner.Run(ctx, req)
	if err != nil {
		ce.Logger.Warnf("trials failed: %v", err)
		return nil, fmt.Errorf("trials: %w", err)
	}
	for _, s := range result.Tiers {
		ce.Logger.Debugf("trials %s: mean %s, median %s, P(gain) %s",
			s.Tier, s.MeanFinalValue.StringFixed(2), s.MedianFinalValue.StringFixed(2), s.ProbabilityOfGain.StringFixed(3))
	}
	return result, nil
}

// Retirement projects wealth to retirement age
func (ce *CalculationEngine) Retirement(p domain.WealthProfile) (*domain.WealthPlan, error) {
	plan, err := ProjectRetirement(p)
	if err != nil {
		ce.Logger.Warnf("retirement projection rejected: %v", err)
		return nil, fmt.Errorf("retirement projection: %w", err)
	}
	ce.Logger.Debugf("retirement projection: %d years, total at retirement %s",
		len(plan.Projections), plan.RetirementTotal().StringFixed(2))
	return plan, nil
}

// RunConfiguration runs every calculator whose section the plan contains
func (ce *CalculationEngine) RunConfiguration(cfg *domain.Configuration, source string) (*domain.Report, error) {
	if cfg.IsEmpty() {
		return nil, domain.NewInvalidInputError("", "plan contains no snapshot, goal, scenario or wealth section")
	}

	now := time.Now
	if ce.Now != nil {
		now = ce.Now
	}
	report := &domain.Report{
		GeneratedAt: now(),
		Source:      source,
		Assumptions: Assumptions(),
	}
	ce.Logger.Infof("running plan %q", source)

	var err error
	if cfg.Snapshot != nil {
		if report.Health, err = ce.HealthScore(*cfg.Snapshot); err != nil {
			return nil, err
		}
	}
	if cfg.Goal != nil {
		if report.Goal, err = ce.GoalPlan(*cfg.Goal); err != nil {
			return nil, err
		}
	}
	if cfg.Scenario != nil {
		if report.Scenarios, err = ce.Scenarios(*cfg.Scenario); err != nil {
			return nil, err
		}
	}
	if cfg.Wealth != nil {
		if report.Wealth, err = ce.Retirement(*cfg.Wealth); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// Assumptions lists the modelling simplifications every report carries
func Assumptions() []string {
	lines := []string{
		"Goal plans grow linearly: contributions split 60% savings / 40% investments with a flat 0.5% (1% aggressive) bonus, no compounding",
		"Scenario returns are randomized monthly around each tier's expected return; drawdown and volatility are table assumptions",
		"Annualized scenario return uses the number of yearly data points including year 0 as the exponent base",
		"Wealth projections compound monthly on assets minus liabilities; the 60/40 savings/investments split is for display only",
	}
	for _, p := range domain.RiskProfiles() {
		lines = append(lines, fmt.Sprintf("%s: %s%% expected return, %s%% volatility, %s%% max drawdown",
			p.Tier.Title(), p.AnnualReturn.Mul(hundred).StringFixed(0),
			p.Volatility.Mul(hundred).StringFixed(0), p.MaxDrawdown.Mul(hundred).StringFixed(0)))
	}
	return lines
}
