package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// OrderInfo is the production order encoded into each card's QR code.
type OrderInfo struct {
	Scenario   string          `json:"scenario"`
	ProductX   string          `json:"product_x"`
	UnitsX     int             `json:"units_x"`
	ProductY   string          `json:"product_y"`
	UnitsY     int             `json:"units_y"`
	PlanProfit float64         `json:"plan_profit"`
	Binding    string          `json:"binding"`
	Resources  []OrderResource `json:"resources"`
}

// OrderResource is the resource draw of an order.
type OrderResource struct {
	Name     string  `json:"name"`
	Used     float64 `json:"used"`
	Capacity float64 `json:"capacity"`
}

// NewOrderInfo takes the operating plan out of a solution.
func NewOrderInfo(scenario string, in model.ProductionInput, sol model.Solution) OrderInfo {
	info := OrderInfo{
		Scenario:   scenario,
		ProductX:   productName(in.ProductX, "X"),
		UnitsX:     sol.OperatingPoint.X,
		ProductY:   productName(in.ProductY, "Y"),
		UnitsY:     sol.OperatingPoint.Y,
		PlanProfit: sol.PlanProfit,
		Binding:    sol.Binding.Kind.String(),
		Resources:  make([]OrderResource, len(sol.Resources)),
	}
	for i, u := range sol.Resources {
		info.Resources[i] = OrderResource{Name: u.Name, Used: u.Used, Capacity: u.Capacity}
	}
	return info
}

// Card layout constants: 2 columns x 4 rows of cards on A4 portrait.
const (
	cardMarginTop  = 10.0
	cardMarginLeft = 10.0
	cardWidth      = 95.0
	cardHeight     = 69.0
	cardCols       = 2
	cardRows       = 4
	cardsPerPage   = cardCols * cardRows
	cardQRSize     = 36.0
	cardPadding    = 3.0
)

// ExportOrderCards writes one card per order. Each card shows the plan in
// words and carries a QR code with the order as JSON, for scanning on the
// shop floor.
func ExportOrderCards(path string, orders []OrderInfo, currency string) error {
	if len(orders) == 0 {
		return fmt.Errorf("no orders to generate cards for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, order := range orders {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % cardsPerPage
		x := cardMarginLeft + float64(pos%cardCols)*cardWidth
		y := cardMarginTop + float64(pos/cardCols)*cardHeight

		if err := renderCard(pdf, tr, x, y, i, order, currency); err != nil {
			return fmt.Errorf("failed to render card for %q: %w", order.Scenario, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderCard(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, n int, order OrderInfo, currency string) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	qrData, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_order_%d", n)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	qrX := x + cardWidth - cardQRSize - cardPadding
	qrY := y + cardHeight - cardQRSize - cardPadding
	pdf.ImageOptions(imgName, qrX, qrY, cardQRSize, cardQRSize, false, opts, 0, "")

	textX := x + cardPadding
	textW := cardWidth - 2*cardPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+cardPadding)
	pdf.CellFormat(textW, 5, truncate(pdf, tr(order.Scenario), textW), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(textX, y+cardPadding+7)
	pdf.CellFormat(textW, 5, tr(fmt.Sprintf("%s: %d units", order.ProductX, order.UnitsX)), "", 0, "L", false, 0, "")
	pdf.SetXY(textX, y+cardPadding+12)
	pdf.CellFormat(textW, 5, tr(fmt.Sprintf("%s: %d units", order.ProductY, order.UnitsY)), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(textX, y+cardPadding+18)
	pdf.CellFormat(textW, 5, tr("Profit: "+FormatAmount(currency, order.PlanProfit)), "", 0, "L", false, 0, "")

	// Resource draw, left of the QR code.
	listW := cardWidth - cardQRSize - 3*cardPadding
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	ly := y + cardPadding + 25
	for _, r := range order.Resources {
		if ly > y+cardHeight-cardPadding-8 {
			break
		}
		pdf.SetXY(textX, ly)
		line := fmt.Sprintf("%s %.4g / %.4g", r.Name, r.Used, r.Capacity)
		pdf.CellFormat(listW, 3.5, truncate(pdf, tr(line), listW), "", 0, "L", false, 0, "")
		ly += 4
	}

	if order.Binding != model.BindingSlack.String() {
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(150, 100, 0)
		pdf.SetXY(textX, y+cardHeight-cardPadding-3.5)
		pdf.CellFormat(listW, 3.5, "Capacity bound: "+order.Binding, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
