package engine

import (
	"fmt"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// BuildProblem validates a production input and turns every resource into a
// constraint rate_x·x + rate_y·y ≤ capacity. Non-negativity of x and y is not
// stored: the enumerator only ever proposes points in the first quadrant.
func BuildProblem(in model.ProductionInput) (*model.Problem, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("building production problem: %w", err)
	}

	constraints := make([]model.Constraint, len(in.Resources))
	names := make([]string, len(in.Resources))
	for i, r := range in.Resources {
		constraints[i] = model.Constraint{A: r.RateX, B: r.RateY, Limit: r.Capacity}
		names[i] = r.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("Resource %d", i+1)
		}
	}
	return model.NewProblem(in.Objective, constraints, names), nil
}
