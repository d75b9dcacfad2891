package engine

import (
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// isFeasible reports whether pt lies in the first quadrant and satisfies every
// resource constraint, each check relaxed by the tolerance.
func isFeasible(p *model.Problem, pt model.Point, tol float64) bool {
	if pt.X < 0 && !within(pt.X, 0, tol) {
		return false
	}
	if pt.Y < 0 && !within(pt.Y, 0, tol) {
		return false
	}
	for i := 0; i < p.NumConstraints(); i++ {
		c := p.Constraint(i)
		used := c.Usage(pt)
		if used > c.Limit && !within(used, c.Limit, tol) {
			return false
		}
	}
	return true
}

// nearAny reports whether pt coincides with one of the kept points.
func nearAny(kept []model.Point, pt model.Point, tol float64) bool {
	for _, k := range kept {
		if k.Near(pt, tol) {
			return true
		}
	}
	return false
}

// filterFeasible drops infeasible candidates and merges coinciding ones.
// Candidates must arrive sorted; the first of each group of coinciding points
// is kept, so the output stays sorted.
func filterFeasible(p *model.Problem, candidates []model.Point, tol float64) []model.Point {
	out := make([]model.Point, 0, len(candidates))
	for _, pt := range candidates {
		if !isFeasible(p, pt, tol) {
			continue
		}
		if nearAny(out, pt, tol) {
			continue
		}
		out = append(out, pt)
	}
	return out
}
