// Package export renders production results to PDF reports, order cards,
// Excel workbooks and DXF drawings.
package export

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// plotMargin leaves room around the feasible region in plots and drawings.
const plotMargin = 1.25

// geometry is the drawable part of a production problem.
type geometry struct {
	region   []model.Point
	segments []engine.Segment
	maxX     float64
	maxY     float64
}

// buildGeometry lays out the feasible region and the constraint boundaries
// inside a box a bit larger than the region.
func buildGeometry(in model.ProductionInput, tol float64) (geometry, error) {
	p, err := engine.BuildProblem(in)
	if err != nil {
		return geometry{}, err
	}
	region := engine.New(engine.Options{Tolerance: tol}).FeasibleRegion(p)

	maxX, maxY := 0.0, 0.0
	for _, pt := range region {
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	maxX = math.Max(1, maxX*plotMargin)
	maxY = math.Max(1, maxY*plotMargin)

	return geometry{
		region:   region,
		segments: engine.BoundarySegments(p, maxX, maxY),
		maxX:     maxX,
		maxY:     maxY,
	}, nil
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders a money value with thousands separators, dropping the
// decimals of whole amounts.
func FormatAmount(currency string, v float64) string {
	var s string
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		s = printer.Sprintf("%d", int64(v))
	} else {
		s = printer.Sprintf("%.2f", v)
	}
	if currency == "" {
		return s
	}
	return currency + " " + s
}
