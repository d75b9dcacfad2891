package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// DXF layer names.
const (
	LayerRegion      = "REGION"
	LayerConstraints = "CONSTRAINTS"
	LayerOptimum     = "OPTIMUM"
	LayerPlan        = "PLAN"
)

// ExportDXF draws the feasible region in problem units: polygon edges on
// REGION, clipped constraint boundaries on CONSTRAINTS, a circle at the
// optimal vertex on OPTIMUM and a cross at the operating plan on PLAN.
func ExportDXF(path string, in model.ProductionInput, sol model.Solution, tol float64) error {
	geo, err := buildGeometry(in, tol)
	if err != nil {
		return fmt.Errorf("failed to lay out drawing: %w", err)
	}
	marker := math.Max(geo.maxX, geo.maxY) * 0.01

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerRegion, color.Green},
		{LayerConstraints, color.Cyan},
		{LayerOptimum, color.Red},
		{LayerPlan, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerRegion); err != nil {
		return err
	}
	if err := drawPolygon(d, geo.region); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerConstraints); err != nil {
		return err
	}
	for _, seg := range geo.segments {
		if _, err := d.Line(seg.From.X, seg.From.Y, 0, seg.To.X, seg.To.Y, 0); err != nil {
			return fmt.Errorf("failed to draw %s boundary: %w", seg.Name, err)
		}
	}

	if err := d.ChangeLayer(LayerOptimum); err != nil {
		return err
	}
	if _, err := d.Circle(sol.Vertex.X, sol.Vertex.Y, 0, marker); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerPlan); err != nil {
		return err
	}
	plan := sol.OperatingPoint.Float()
	if _, err := d.Line(plan.X-marker, plan.Y-marker, 0, plan.X+marker, plan.Y+marker, 0); err != nil {
		return err
	}
	if _, err := d.Line(plan.X-marker, plan.Y+marker, 0, plan.X+marker, plan.Y-marker, 0); err != nil {
		return err
	}

	return d.SaveAs(path)
}

// drawPolygon closes the region outline. One or two points produce no
// closed outline, only the single edge between them.
func drawPolygon(d *drawing.Drawing, pts []model.Point) error {
	switch len(pts) {
	case 0, 1:
		return nil
	case 2:
		_, err := d.Line(pts[0].X, pts[0].Y, 0, pts[1].X, pts[1].Y, 0)
		return err
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		if _, err := d.Line(p.X, p.Y, 0, q.X, q.Y, 0); err != nil {
			return fmt.Errorf("failed to draw region edge: %w", err)
		}
	}
	return nil
}
