// Package engine solves the two-product production-mix problem by vertex
// enumeration and derives resource metrics at the chosen operating point.
package engine

import (
	"math"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// Options tunes the optimizer. Zero fields fall back to their defaults.
type Options struct {
	Tolerance  float64
	UnitPolicy model.UnitPolicy
}

// DefaultOptions returns the default tolerance and the floor unit policy.
func DefaultOptions() Options {
	return Options{
		Tolerance:  model.DefaultTolerance,
		UnitPolicy: model.UnitPolicyFloor,
	}
}

// OptionsFromConfig takes the solver settings out of the application config.
func OptionsFromConfig(cfg model.AppConfig) Options {
	return Options{Tolerance: cfg.Tolerance, UnitPolicy: cfg.UnitPolicy}
}

// Optimizer runs the vertex-enumeration solver. It holds no state between
// calls and is safe for concurrent use.
type Optimizer struct {
	opts Options
}

func New(opts Options) *Optimizer {
	def := DefaultOptions()
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}
	if !opts.UnitPolicy.Valid() {
		opts.UnitPolicy = def.UnitPolicy
	}
	return &Optimizer{opts: opts}
}

// Options returns the effective settings.
func (o *Optimizer) Options() Options {
	return o.opts
}

// Optimize validates and builds the problem, then solves it.
func (o *Optimizer) Optimize(in model.ProductionInput) (model.Solution, error) {
	p, err := BuildProblem(in)
	if err != nil {
		return model.Solution{}, err
	}
	return o.OptimizeProblem(p), nil
}

// OptimizeProblem solves a built problem. It never fails: a problem whose
// feasible set holds nothing but the origin resolves to the zero plan.
func (o *Optimizer) OptimizeProblem(p *model.Problem) model.Solution {
	tol := o.opts.Tolerance
	feasible := filterFeasible(p, enumerateCandidates(p, tol), tol)
	if len(feasible) == 0 {
		sol := model.ZeroSolution()
		sol.Resources, sol.Binding = reportUsage(p, model.Point{})
		return sol
	}

	obj := p.Objective()
	corners := make([]model.Vertex, len(feasible))
	for i, pt := range feasible {
		corners[i] = model.Vertex{Point: pt, Profit: obj.Value(pt)}
	}
	best := pickOptimal(corners, tol)
	corners[best].Optimal = true

	vertex := corners[best].Point
	plan := applyUnitPolicy(vertex, tol)
	sol := model.Solution{
		OperatingPoint: plan,
		Vertex:         vertex,
		ObjectiveValue: corners[best].Profit,
		PlanProfit:     obj.Value(plan.Float()),
		Feasible:       true,
		Corners:        corners,
	}
	sol.Resources, sol.Binding = reportUsage(p, plan.Float())
	return sol
}

// pickOptimal returns the index of the first corner whose profit is within tol
// of the maximum. Corners arrive in lexicographic order, so ties go to the
// smallest (X, Y).
func pickOptimal(corners []model.Vertex, tol float64) int {
	top := 0
	for i := range corners {
		if corners[i].Profit > corners[top].Profit {
			top = i
		}
	}
	for i := range corners {
		if within(corners[i].Profit, corners[top].Profit, tol) {
			return i
		}
	}
	return top
}

// applyUnitPolicy converts the continuous optimum into whole units by
// flooring each coordinate, the only policy New accepts. Values a round-off
// away from an integer are taken as that integer first, so a computed
// 19.9999999 still plans 20 units.
func applyUnitPolicy(pt model.Point, tol float64) model.UnitPoint {
	return model.UnitPoint{X: floorUnits(pt.X, tol), Y: floorUnits(pt.Y, tol)}
}

func floorUnits(v, tol float64) int {
	if r := math.Round(v); within(v, r, tol) {
		v = r
	}
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v))
}

// Solve is a convenience wrapper using the default options.
func Solve(in model.ProductionInput) (model.Solution, error) {
	return New(DefaultOptions()).Optimize(in)
}
