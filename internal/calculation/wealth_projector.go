package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// allocationMix holds the Stocks/Bonds/Real Estate split per tier
var allocationMix = map[domain.RiskTier][3]int{
	domain.TierAggressive:   {80, 10, 10},
	domain.TierModerate:     {60, 30, 10},
	domain.TierConservative: {40, 50, 10},
}

var allocationCategories = [3]string{"Stocks", "Bonds", "Real Estate"}

// ProjectRetirement grows net worth month by month until retirement age and
// recommends an allocation for the profile's risk tier.
//
// Each recorded year runs twelve months of contribute-then-grow, so the
// point at the current age already includes one year of saving. Savings and
// Investments split each total 60/40 for display only.
func ProjectRetirement(p domain.WealthProfile) (*domain.WealthPlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	years := p.YearsToRetirement()
	monthlyReturn := p.InvestmentReturnPct.Div(hundred).Div(twelve)
	savingsShare := decimal.NewFromFloat(0.6)
	investmentShare := decimal.NewFromFloat(0.4)

	netWorth := p.NetWorth()
	balance := netWorth
	projections := make([]domain.RetirementProjectionPoint, 0, years+1)
	for year := 0; year <= years; year++ {
		for month := 0; month < 12; month++ {
			balance = balance.Add(p.MonthlySavings)
			balance = balance.Add(balance.Mul(monthlyReturn)).Round(balancePrecision)
		}
		projections = append(projections, domain.RetirementProjectionPoint{
			Age:         p.Age + year,
			Savings:     balance.Mul(savingsShare),
			Investments: balance.Mul(investmentShare),
			Total:       balance,
		})
	}

	return &domain.WealthPlan{
		NetWorth:    netWorth,
		Projections: projections,
		Allocation:  RecommendedAllocation(p.RiskTolerance, netWorth),
	}, nil
}

// RecommendedAllocation splits netWorth across Stocks, Bonds and Real Estate.
// Unknown tiers get the conservative mix. Percentages always sum to 100.
func RecommendedAllocation(t domain.RiskTier, netWorth decimal.Decimal) []domain.AllocationSlice {
	mix, ok := allocationMix[t]
	if !ok {
		mix = allocationMix[domain.TierConservative]
	}
	slices := make([]domain.AllocationSlice, len(mix))
	for i, pctValue := range mix {
		slices[i] = domain.AllocationSlice{
			Category:   allocationCategories[i],
			Percentage: pctValue,
			Value:      decimal.NewFromInt(int64(pctValue)).Div(hundred).Mul(netWorth),
		}
	}
	return slices
}
