package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// whatIfStep is the relative change applied by the default what-if scenarios.
const whatIfStep = 0.10

// ComparisonScenario defines a named production input to compare.
type ComparisonScenario struct {
	Name  string                `json:"name" yaml:"name"`
	Input model.ProductionInput `json:"input" yaml:"input"`
}

// ComparisonResult holds the solution for a single scenario and its change
// against the first (baseline) scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario `json:"scenario" yaml:"scenario"`
	Solution        model.Solution     `json:"solution" yaml:"solution"`
	ObjectiveDelta  float64            `json:"objective_delta" yaml:"objective_delta"`
	PlanProfitDelta float64            `json:"plan_profit_delta" yaml:"plan_profit_delta"`
}

// CompareScenarios solves each scenario and returns the results in scenario
// order. Deltas are measured against the first scenario.
func (o *Optimizer) CompareScenarios(ctx context.Context, scenarios []ComparisonScenario) ([]ComparisonResult, error) {
	logger := logr.FromContextOrDiscard(ctx)
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sol, err := o.Optimize(scenario.Input)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		res := ComparisonResult{Scenario: scenario, Solution: sol}
		if len(results) > 0 {
			base := results[0].Solution
			res.ObjectiveDelta = sol.ObjectiveValue - base.ObjectiveValue
			res.PlanProfitDelta = sol.PlanProfit - base.PlanProfit
		}
		logger.V(1).Info("Compared scenario",
			"scenario", scenario.Name,
			"objective", sol.ObjectiveValue,
			"delta", res.ObjectiveDelta)
		results = append(results, res)
	}

	return results, nil
}

// RankByGain returns the non-baseline results ordered by objective gain,
// largest first. Equal gains keep scenario order.
func RankByGain(results []ComparisonResult) []ComparisonResult {
	if len(results) < 2 {
		return nil
	}
	ranked := make([]ComparisonResult, len(results)-1)
	copy(ranked, results[1:])
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ObjectiveDelta > ranked[j].ObjectiveDelta
	})
	return ranked
}

// BuildDefaultScenarios generates what-if alternatives around a base input:
// each resource capacity raised by 10% and each product's profit raised by 10%.
func BuildDefaultScenarios(base model.ProductionInput) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:  "Current Plan",
			Input: base.Clone(),
		},
	}

	for i, r := range base.Resources {
		more := base.Clone()
		more.Resources[i].Capacity = r.Capacity * (1 + whatIfStep)
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("Resource %d", i+1)
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:  fmt.Sprintf("%s +10%% (%.4g)", name, more.Resources[i].Capacity),
			Input: more,
		})
	}

	richerX := base.Clone()
	richerX.Objective.CX *= 1 + whatIfStep
	scenarios = append(scenarios, ComparisonScenario{
		Name:  fmt.Sprintf("%s profit +10%%", productLabel(base.ProductX, "X")),
		Input: richerX,
	})

	richerY := base.Clone()
	richerY.Objective.CY *= 1 + whatIfStep
	scenarios = append(scenarios, ComparisonScenario{
		Name:  fmt.Sprintf("%s profit +10%%", productLabel(base.ProductY, "Y")),
		Input: richerY,
	})

	return scenarios
}

func productLabel(name, fallback string) string {
	if name == "" {
		return "Product " + fallback
	}
	return name
}
