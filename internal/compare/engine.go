package compare

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
)

// WhatIfBaseName labels the untransformed profile in a what-if comparison
const WhatIfBaseName = "base"

// CompareEngine orchestrates tier and what-if comparisons
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareTiers simulates the three tiers and compares them against base.
// An empty base defaults to moderate.
func (ce *CompareEngine) CompareTiers(req domain.ScenarioRequest, base domain.RiskTier) (*ComparisonSet, error) {
	comparison, err := ce.CalcEngine.Scenarios(req)
	if err != nil {
		return nil, err
	}
	return ce.CompareTierResults(comparison, base)
}

// CompareTierResults builds a tier comparison from an existing simulation
func (ce *CompareEngine) CompareTierResults(comparison *domain.ScenarioComparison, base domain.RiskTier) (*ComparisonSet, error) {
	if comparison == nil {
		return nil, fmt.Errorf("scenario comparison cannot be nil")
	}
	if base == "" {
		base = domain.TierModerate
	}
	if !base.IsValid() {
		return nil, domain.NewInvalidInputError("base", fmt.Sprintf("unknown risk tier %q", base))
	}

	baseResult := ce.MetricsCalculator.FromScenario(comparison.Result(base))

	alternatives := []ComparisonResult{}
	for _, t := range domain.RiskTiers {
		if t == base {
			continue
		}
		alt := ce.MetricsCalculator.FromScenario(comparison.Result(t))
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		Kind:               KindTiers,
		BaseName:           baseResult.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareWhatIf applies each named template to profile and compares the
// projected retirement totals against the untransformed profile
func (ce *CompareEngine) CompareWhatIf(profile domain.WealthProfile, templates []string) (*ComparisonSet, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("at least one template is required")
	}

	resolved := make([]transform.Template, 0, len(templates))
	for _, name := range templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		resolved = append(resolved, template)
	}

	return ce.compareTemplates(profile, resolved)
}

// CompareTransforms compares each ad hoc transform as its own alternative
func (ce *CompareEngine) CompareTransforms(profile domain.WealthProfile, transforms []transform.ProfileTransform) (*ComparisonSet, error) {
	if len(transforms) == 0 {
		return nil, fmt.Errorf("at least one transform is required")
	}

	templates := make([]transform.Template, 0, len(transforms))
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		templates = append(templates, transform.Template{
			Name:        t.Name(),
			Description: t.Description(),
			Transforms:  []transform.ProfileTransform{t},
		})
	}

	return ce.compareTemplates(profile, templates)
}

func (ce *CompareEngine) compareTemplates(profile domain.WealthProfile, templates []transform.Template) (*ComparisonSet, error) {
	basePlan, err := ce.CalcEngine.Retirement(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.FromWealth(WhatIfBaseName, profile, basePlan)

	alternatives := []ComparisonResult{}
	for _, template := range templates {
		modified, err := transform.ApplyTemplate(&profile, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
		}

		plan, err := ce.CalcEngine.Retirement(*modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate what-if %s: %w", template.Name, err)
		}

		altResult := ce.MetricsCalculator.FromWealth(template.Name, *modified, plan)
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		Kind:               KindWhatIf,
		BaseName:           WhatIfBaseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
