package engine

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// within compares two values with an ε that grows with their magnitude, so the
// same tolerance serves capacities of 10 and profits of 10 million alike.
func within(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// snap replaces values within tolerance of zero by exactly zero.
func snap(v, tol float64) float64 {
	if within(v, 0, tol) {
		return 0
	}
	return v
}

// intersect solves the 2×2 system formed by two constraint boundaries.
// Parallel boundaries (a vanishing determinant relative to the coefficient
// products) have no single crossing and report false.
func intersect(c1, c2 model.Constraint, tol float64) (model.Point, bool) {
	scale := math.Abs(c1.A*c2.B) + math.Abs(c2.A*c1.B)
	if scale == 0 {
		return model.Point{}, false
	}
	a := mat.NewDense(2, 2, []float64{
		c1.A, c1.B,
		c2.A, c2.B,
	})
	if math.Abs(mat.Det(a)) <= tol*scale {
		return model.Point{}, false
	}

	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(2, []float64{c1.Limit, c2.Limit})); err != nil {
		// A Condition error still carries a solution; anything else does not.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return model.Point{}, false
		}
	}
	return model.Point{X: x.AtVec(0), Y: x.AtVec(1)}, true
}

// enumerateCandidates lists every point where two boundaries, or a boundary
// and an axis, meet: the origin, each finite axis intercept and each pairwise
// boundary crossing with non-negative coordinates. The result is sorted
// lexicographically by (x, y) and may still contain infeasible or duplicate points.
func enumerateCandidates(p *model.Problem, tol float64) []model.Point {
	n := p.NumConstraints()
	pts := make([]model.Point, 0, 1+2*n+n*(n-1)/2)
	pts = append(pts, model.Point{})

	for i := 0; i < n; i++ {
		c := p.Constraint(i)
		if xi := c.XIntercept(); xi.Finite {
			pts = append(pts, model.Point{X: snap(xi.Value, tol)})
		}
		if yi := c.YIntercept(); yi.Finite {
			pts = append(pts, model.Point{Y: snap(yi.Value, tol)})
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pt, ok := intersect(p.Constraint(i), p.Constraint(j), tol)
			if !ok {
				continue
			}
			pt = model.Point{X: snap(pt.X, tol), Y: snap(pt.Y, tol)}
			if pt.X < 0 || pt.Y < 0 {
				continue
			}
			pts = append(pts, pt)
		}
	}

	sortPoints(pts)
	return pts
}

// sortPoints orders points lexicographically by (x, y).
func sortPoints(pts []model.Point) {
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Less(pts[j])
	})
}
