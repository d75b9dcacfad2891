package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// lineColor is an RGB color for one constraint boundary.
type lineColor struct {
	R, G, B int
}

var lineColors = []lineColor{
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 121, G: 85, B: 72},  // brown
	{R: 96, G: 125, B: 139}, // slate
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	contentWidth = pageWidth - marginLeft - marginRight
	legendWidth  = 70.0
	axisSpace    = 14.0
	rowHeight    = 6.0
)

// ReportOptions controls the production report.
type ReportOptions struct {
	Title     string
	Currency  string
	Tolerance float64 // Solver tolerance for the plotted region; 0 means the default
}

// ExportPDF writes a production report: the feasible-region plot on the
// first page, then parameters, corner points and resource usage.
func ExportPDF(path string, in model.ProductionInput, sol model.Solution, opts ReportOptions) error {
	geo, err := buildGeometry(in, opts.Tolerance)
	if err != nil {
		return fmt.Errorf("failed to lay out plot: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "Production Mix Report"
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	renderPlotPage(pdf, tr, in, sol, geo, opts)

	pdf.AddPage()
	renderSummaryPage(pdf, tr, in, sol, opts)

	return pdf.OutputFileAndClose(path)
}

// plotCanvas maps problem coordinates onto a page rectangle.
type plotCanvas struct {
	x, y, w, h float64
	maxX, maxY float64
}

func (c plotCanvas) at(p model.Point) (float64, float64) {
	return c.x + p.X/c.maxX*c.w, c.y + c.h - p.Y/c.maxY*c.h
}

func renderPlotPage(pdf *fpdf.Fpdf, tr func(string) string, in model.ProductionInput, sol model.Solution, geo geometry, opts ReportOptions) {
	nameX := productName(in.ProductX, "X")
	nameY := productName(in.ProductY, "Y")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, headerHeight, tr(opts.Title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Optimum %s | Plan: %d %s, %d %s | Profit: %s | %s",
		sol.Vertex, sol.OperatingPoint.X, nameX, sol.OperatingPoint.Y, nameY,
		FormatAmount(opts.Currency, sol.PlanProfit), sol.Binding.Describe())
	pdf.CellFormat(contentWidth, 5, tr(stats), "", 0, "L", false, 0, "")

	c := plotCanvas{
		x:    marginLeft + axisSpace,
		y:    drawAreaTop,
		w:    contentWidth - legendWidth - axisSpace,
		h:    pageHeight - drawAreaTop - marginBottom - axisSpace,
		maxX: geo.maxX,
		maxY: geo.maxY,
	}

	drawAxes(pdf, tr, c, nameX, nameY)
	drawRegion(pdf, c, geo.region)

	pdf.ClipRect(c.x, c.y, c.w, c.h, false)
	for i, seg := range geo.segments {
		col := lineColors[i%len(lineColors)]
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.5)
		x1, y1 := c.at(seg.From)
		x2, y2 := c.at(seg.To)
		pdf.Line(x1, y1, x2, y2)
	}
	pdf.ClipEnd()

	// Corner points, then the optimum and the floored plan on top.
	pdf.SetFillColor(60, 60, 60)
	for _, v := range sol.Corners {
		x, y := c.at(v.Point)
		pdf.Circle(x, y, 0.8, "F")
	}
	ox, oy := c.at(sol.Vertex)
	pdf.SetFillColor(220, 0, 0)
	pdf.Circle(ox, oy, 1.8, "F")

	px, py := c.at(sol.OperatingPoint.Float())
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(px-1.5, py-1.5, px+1.5, py+1.5)
	pdf.Line(px-1.5, py+1.5, px+1.5, py-1.5)

	drawLegend(pdf, tr, geo, c.x+c.w+8, c.y)
}

// drawAxes frames the plot and labels five ticks on each axis.
func drawAxes(pdf *fpdf.Fpdf, tr func(string) string, c plotCanvas, nameX, nameY string) {
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(c.x, c.y, c.w, c.h, "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		f := float64(i) / ticks

		tx := c.x + f*c.w
		pdf.SetDrawColor(225, 225, 225)
		pdf.Line(tx, c.y, tx, c.y+c.h)
		label := fmt.Sprintf("%.4g", f*c.maxX)
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(tx-lw/2, c.y+c.h+1)
		pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")

		ty := c.y + c.h - f*c.h
		pdf.Line(c.x, ty, c.x+c.w, ty)
		label = fmt.Sprintf("%.4g", f*c.maxY)
		lw = pdf.GetStringWidth(label)
		pdf.SetXY(c.x-lw-1.5, ty-2)
		pdf.CellFormat(lw, 4, label, "", 0, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	xTitle := tr(nameX + " (units)")
	xw := pdf.GetStringWidth(xTitle)
	pdf.SetXY(c.x+(c.w-xw)/2, c.y+c.h+6)
	pdf.CellFormat(xw, 4, xTitle, "", 0, "C", false, 0, "")

	yTitle := tr(nameY + " (units)")
	yw := pdf.GetStringWidth(yTitle)
	pdf.TransformBegin()
	pdf.TransformRotate(90, c.x-axisSpace+3, c.y+c.h/2)
	pdf.SetXY(c.x-axisSpace+3-yw/2, c.y+c.h/2-2)
	pdf.CellFormat(yw, 4, yTitle, "", 0, "C", false, 0, "")
	pdf.TransformEnd()
}

// drawRegion shades the feasible polygon. A degenerate region is drawn as a
// segment or a dot.
func drawRegion(pdf *fpdf.Fpdf, c plotCanvas, region []model.Point) {
	pdf.SetDrawColor(46, 125, 50)
	pdf.SetLineWidth(0.6)
	switch len(region) {
	case 0:
		return
	case 1:
		x, y := c.at(region[0])
		pdf.SetFillColor(46, 125, 50)
		pdf.Circle(x, y, 1, "F")
	case 2:
		x1, y1 := c.at(region[0])
		x2, y2 := c.at(region[1])
		pdf.Line(x1, y1, x2, y2)
	default:
		pts := make([]fpdf.PointType, len(region))
		for i, p := range region {
			pts[i].X, pts[i].Y = c.at(p)
		}
		pdf.SetFillColor(129, 199, 132)
		pdf.SetAlpha(0.45, "Normal")
		pdf.Polygon(pts, "F")
		pdf.SetAlpha(1, "Normal")
		pdf.Polygon(pts, "D")
	}
}

func drawLegend(pdf *fpdf.Fpdf, tr func(string) string, geo geometry, x, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(legendWidth-10, 5, "Legend", "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 8)
	for i, seg := range geo.segments {
		col := lineColors[i%len(lineColors)]
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.8)
		pdf.Line(x, y+2, x+6, y+2)
		pdf.SetXY(x+8, y)
		pdf.CellFormat(legendWidth-18, 4, tr(seg.Name), "", 0, "L", false, 0, "")
		y += 5
	}

	y += 2
	pdf.SetFillColor(129, 199, 132)
	pdf.Rect(x, y+0.5, 6, 3, "F")
	pdf.SetXY(x+8, y)
	pdf.CellFormat(legendWidth-18, 4, "Feasible region", "", 0, "L", false, 0, "")
	y += 5

	pdf.SetFillColor(220, 0, 0)
	pdf.Circle(x+3, y+2, 1.5, "F")
	pdf.SetXY(x+8, y)
	pdf.CellFormat(legendWidth-18, 4, "Optimal vertex", "", 0, "L", false, 0, "")
	y += 5

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(x+1.5, y+0.5, x+4.5, y+3.5)
	pdf.Line(x+1.5, y+3.5, x+4.5, y+0.5)
	pdf.SetXY(x+8, y)
	pdf.CellFormat(legendWidth-18, 4, "Operating plan", "", 0, "L", false, 0, "")
}

// renderSummaryPage lists the inputs on the left and the results on the right.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, in model.ProductionInput, sol model.Solution, opts ReportOptions) {
	nameX := productName(in.ProductX, "X")
	nameY := productName(in.ProductY, "Y")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Production Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	// Left column: parameters and headline results.
	leftX := marginLeft
	y := drawHeading(pdf, leftX, marginTop+18, "Parameters")
	params := [][]string{{"Profit per unit", FormatAmount(opts.Currency, in.Objective.CX), FormatAmount(opts.Currency, in.Objective.CY), ""}}
	for i, r := range in.Resources {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("Resource %d", i+1)
		}
		params = append(params, []string{name, fmt.Sprintf("%g", r.RateX), fmt.Sprintf("%g", r.RateY), fmt.Sprintf("%g", r.Capacity)})
	}
	y = drawTable(pdf, tr, leftX, y, []float64{40, 32, 32, 26}, []string{"", nameX, nameY, "Capacity"}, params)

	y = drawHeading(pdf, leftX, y+6, "Results")
	results := []struct {
		label string
		value string
	}{
		{"Optimal vertex", sol.Vertex.String()},
		{"Objective value", FormatAmount(opts.Currency, sol.ObjectiveValue)},
		{"Operating plan", fmt.Sprintf("%d %s, %d %s", sol.OperatingPoint.X, nameX, sol.OperatingPoint.Y, nameY)},
		{"Plan profit", FormatAmount(opts.Currency, sol.PlanProfit)},
		{"Binding", sol.Binding.Describe()},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range results {
		pdf.SetXY(leftX+5, y)
		pdf.CellFormat(40, rowHeight, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(85, rowHeight, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += rowHeight + 1
	}

	// Right column: corner points and resource usage.
	rightX := marginLeft + 142
	y = drawHeading(pdf, rightX, marginTop+18, "Corner Points")
	corners := make([][]string, len(sol.Corners))
	for i, v := range sol.Corners {
		mark := ""
		if v.Optimal {
			mark = "optimal"
		}
		corners[i] = []string{fmt.Sprintf("%d", i+1), fmt.Sprintf("%.4g", v.Point.X), fmt.Sprintf("%.4g", v.Point.Y), FormatAmount(opts.Currency, v.Profit), mark}
	}
	y = drawTable(pdf, tr, rightX, y, []float64{10, 22, 22, 50, 21}, []string{"#", nameX, nameY, "Profit", ""}, corners)

	y = drawHeading(pdf, rightX, y+6, "Resource Usage")
	usage := make([][]string, len(sol.Resources))
	for i, u := range sol.Resources {
		status := "slack"
		if u.Exhausted {
			status = "exhausted"
		}
		usage[i] = []string{u.Name, fmt.Sprintf("%.4g", u.Used), fmt.Sprintf("%.4g", u.Capacity), fmt.Sprintf("%.4g", u.Slack), fmt.Sprintf("%.1f%%", u.Utilization*100), status}
	}
	drawTable(pdf, tr, rightX, y, []float64{35, 18, 18, 18, 18, 18}, []string{"Resource", "Used", "Capacity", "Slack", "Usage", "Status"}, usage)
}

func drawHeading(pdf *fpdf.Fpdf, x, y float64, text string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, text, "", 0, "L", false, 0, "")
	return y + 9
}

// drawTable renders a bordered table with a shaded header row and returns
// the y position below it.
func drawTable(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, widths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := x
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(widths[i], rowHeight, tr(header), "1", 0, "C", true, 0, "")
		xPos += widths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = x
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(widths[j], rowHeight, tr(cell), "1", 0, "C", true, 0, "")
			xPos += widths[j]
		}
		y += rowHeight
	}
	return y
}

func productName(name, fallback string) string {
	if name == "" {
		return "Product " + fallback
	}
	return name
}
