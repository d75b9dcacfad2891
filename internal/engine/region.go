package engine

import (
	"math"
	"sort"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// FeasibleRegion returns the corners of the feasible polygon in
// counter-clockwise order starting from the origin. Degenerate regions come
// back as a single point or a segment.
func (o *Optimizer) FeasibleRegion(p *model.Problem) []model.Point {
	tol := o.opts.Tolerance
	pts := filterFeasible(p, enumerateCandidates(p, tol), tol)
	if len(pts) < 3 {
		return pts
	}

	var cx, cy float64
	for _, pt := range pts {
		cx += pt.X
		cy += pt.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	angle := func(pt model.Point) float64 {
		a := math.Atan2(pt.Y-cy, pt.X-cx)
		if a < 0 {
			a += 2 * math.Pi
		}
		return a
	}
	sort.SliceStable(pts, func(i, j int) bool {
		return angle(pts[i]) < angle(pts[j])
	})

	// Rotate so the origin leads; it is always a corner of the region.
	for i, pt := range pts {
		if pt.X == 0 && pt.Y == 0 {
			pts = append(pts[i:], pts[:i]...)
			break
		}
	}
	return pts
}

// Segment is a drawable piece of a constraint boundary inside the first quadrant.
type Segment struct {
	Name     string
	From, To model.Point
}

// BoundarySegments clips each constraint boundary to the box [0, maxX]×[0, maxY].
// A boundary that never reaches the y axis is vertical and one that never
// reaches the x axis is horizontal.
func BoundarySegments(p *model.Problem, maxX, maxY float64) []Segment {
	var segs []Segment
	for i := 0; i < p.NumConstraints(); i++ {
		c := p.Constraint(i)
		name := p.ResourceName(i)
		switch {
		case c.A == 0 && c.B == 0:
			continue
		case c.B == 0:
			x := c.Limit / c.A
			segs = append(segs, Segment{Name: name, From: model.Point{X: x}, To: model.Point{X: x, Y: maxY}})
		case c.A == 0:
			y := c.Limit / c.B
			segs = append(segs, Segment{Name: name, From: model.Point{Y: y}, To: model.Point{X: maxX, Y: y}})
		default:
			from := model.Point{Y: c.Limit / c.B}
			if from.Y > maxY {
				from = model.Point{X: (c.Limit - c.B*maxY) / c.A, Y: maxY}
			}
			xEnd := math.Min(maxX, c.Limit/c.A)
			if from.X > xEnd {
				continue
			}
			segs = append(segs, Segment{
				Name: name,
				From: from,
				To:   model.Point{X: xEnd, Y: (c.Limit - c.A*xEnd) / c.B},
			})
		}
	}
	return segs
}
