package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("scale_savings", createScaleMonthlySavings)
	registry.Register("adjust_savings", createAdjustMonthlySavings)
	registry.Register("set_return", createSetInvestmentReturn)
	registry.Register("set_risk", createSetRiskTolerance)
	registry.Register("pay_down_liabilities", createPayDownLiabilities)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_retirement:years=3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createPostponeRetirement(params map[string]string) (ProfileTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("postpone_retirement requires 'years' parameter")
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}

	return &PostponeRetirement{Years: years}, nil
}

func createScaleMonthlySavings(params map[string]string) (ProfileTransform, error) {
	factor, err := requireDecimal("scale_savings", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleMonthlySavings{Factor: factor}, nil
}

func createAdjustMonthlySavings(params map[string]string) (ProfileTransform, error) {
	delta, err := requireDecimal("adjust_savings", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustMonthlySavings{Delta: delta}, nil
}

func createSetInvestmentReturn(params map[string]string) (ProfileTransform, error) {
	pct, err := requireDecimal("set_return", params, "pct")
	if err != nil {
		return nil, err
	}
	return &SetInvestmentReturn{Pct: pct}, nil
}

func createSetRiskTolerance(params map[string]string) (ProfileTransform, error) {
	raw, ok := params["tier"]
	if !ok {
		return nil, fmt.Errorf("set_risk requires 'tier' parameter")
	}
	tier, err := domain.ParseRiskTier(raw)
	if err != nil {
		return nil, err
	}
	return &SetRiskTolerance{Tier: tier}, nil
}

func createPayDownLiabilities(params map[string]string) (ProfileTransform, error) {
	if _, ok := params["amount"]; !ok {
		return &PayDownLiabilities{}, nil
	}
	amount, err := requireDecimal("pay_down_liabilities", params, "amount")
	if err != nil {
		return nil, err
	}
	return &PayDownLiabilities{Amount: amount}, nil
}
