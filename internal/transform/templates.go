package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tierReturnPct is a tier's expected annual return as a percentage
func tierReturnPct(t domain.RiskTier) decimal.Decimal {
	p, _ := domain.RiskProfileFor(t)
	return p.AnnualReturn.Mul(decimal.NewFromInt(100))
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Retirement timing
	registry.Register(Template{
		Name:        "retire_later_2yr",
		Description: "Work 2 more years before retiring",
		Transforms:  []ProfileTransform{&PostponeRetirement{Years: 2}},
	})
	registry.Register(Template{
		Name:        "retire_later_5yr",
		Description: "Work 5 more years before retiring",
		Transforms:  []ProfileTransform{&PostponeRetirement{Years: 5}},
	})
	registry.Register(Template{
		Name:        "retire_earlier_2yr",
		Description: "Retire 2 years earlier",
		Transforms:  []ProfileTransform{&PostponeRetirement{Years: -2}},
	})

	// Savings
	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Increase monthly savings by 10%",
		Transforms:  []ProfileTransform{&ScaleMonthlySavings{Factor: decimal.NewFromFloat(1.10)}},
	})
	registry.Register(Template{
		Name:        "save_more_25pct",
		Description: "Increase monthly savings by 25%",
		Transforms:  []ProfileTransform{&ScaleMonthlySavings{Factor: decimal.NewFromFloat(1.25)}},
	})
	registry.Register(Template{
		Name:        "save_500_more",
		Description: "Save an extra $500 every month",
		Transforms:  []ProfileTransform{&AdjustMonthlySavings{Delta: decimal.NewFromInt(500)}},
	})

	// Market returns
	registry.Register(Template{
		Name:        "low_returns",
		Description: "Stress test: 4% annual return",
		Transforms:  []ProfileTransform{&SetInvestmentReturn{Pct: decimal.NewFromInt(4)}},
	})
	registry.Register(Template{
		Name:        "high_returns",
		Description: "Optimistic: 10% annual return",
		Transforms:  []ProfileTransform{&SetInvestmentReturn{Pct: decimal.NewFromInt(10)}},
	})

	// Allocation
	registry.Register(Template{
		Name:        "aggressive_mix",
		Description: "Aggressive allocation at its expected return",
		Transforms: []ProfileTransform{
			&SetRiskTolerance{Tier: domain.TierAggressive},
			&SetInvestmentReturn{Pct: tierReturnPct(domain.TierAggressive)},
		},
	})
	registry.Register(Template{
		Name:        "conservative_mix",
		Description: "Conservative allocation at its expected return",
		Transforms: []ProfileTransform{
			&SetRiskTolerance{Tier: domain.TierConservative},
			&SetInvestmentReturn{Pct: tierReturnPct(domain.TierConservative)},
		},
	})

	// Debt
	registry.Register(Template{
		Name:        "debt_free",
		Description: "Pay off all liabilities with outside funds",
		Transforms:  []ProfileTransform{&PayDownLiabilities{}},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.WealthProfile, template Template) (*domain.WealthProfile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Retirement Timing", "Savings", "Market Returns", "Allocation & Debt"}
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "retire_"):
			categories[order[0]] = append(categories[order[0]], template)
		case strings.HasPrefix(name, "save_"):
			categories[order[1]] = append(categories[order[1]], template)
		case strings.HasSuffix(name, "_returns"):
			categories[order[2]] = append(categories[order[2]], template)
		default:
			categories[order[3]] = append(categories[order[3]], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  finplan what-if plan.yaml --with retire_later_2yr,save_more_10pct\n")
	sb.WriteString("  finplan what-if plan.yaml --transform postpone_retirement:years=3\n")

	return sb.String()
}
