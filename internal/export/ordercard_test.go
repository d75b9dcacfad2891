package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

func TestNewOrderInfo(t *testing.T) {
	in, sol := solveDefault(t)
	info := NewOrderInfo("Workshop", in, sol)

	if info.Scenario != "Workshop" {
		t.Errorf("expected scenario Workshop, got %q", info.Scenario)
	}
	if info.ProductX != "Table" || info.ProductY != "Chair" {
		t.Errorf("unexpected products %q/%q", info.ProductX, info.ProductY)
	}
	if info.UnitsX != 0 || info.UnitsY != 80 {
		t.Errorf("expected plan 0/80, got %d/%d", info.UnitsX, info.UnitsY)
	}
	if info.PlanProfit != 24000000 {
		t.Errorf("expected profit 24000000, got %g", info.PlanProfit)
	}
	if info.Binding != "resource" {
		t.Errorf("expected binding resource, got %q", info.Binding)
	}
	if len(info.Resources) != 2 || info.Resources[1].Name != "Teak wood" || info.Resources[1].Used != 120 {
		t.Errorf("unexpected resources %+v", info.Resources)
	}
}

func TestNewOrderInfo_UnnamedProducts(t *testing.T) {
	in := model.DefaultProductionInput()
	in.ProductX, in.ProductY = "", ""
	info := NewOrderInfo("", in, model.ZeroSolution())
	if info.ProductX != "Product X" || info.ProductY != "Product Y" {
		t.Errorf("expected fallback names, got %q/%q", info.ProductX, info.ProductY)
	}
	if info.Binding != "slack" {
		t.Errorf("expected slack binding, got %q", info.Binding)
	}
}

func TestOrderInfo_JSONRoundTrip(t *testing.T) {
	in, sol := solveDefault(t)
	info := NewOrderInfo("Workshop", in, sol)

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"scenario", "product_x", "units_x", "product_y", "units_y", "plan_profit", "binding", "resources"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("QR payload is missing %q", key)
		}
	}
}

func TestExportOrderCards_CreatesFile(t *testing.T) {
	in, sol := solveDefault(t)
	path := filepath.Join(t.TempDir(), "orders.pdf")

	orders := []OrderInfo{NewOrderInfo("Workshop", in, sol)}
	if err := ExportOrderCards(path, orders, "Rp"); err != nil {
		t.Fatalf("ExportOrderCards returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportOrderCards_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportOrderCards(path, nil, "Rp"); err == nil {
		t.Fatal("expected error for no orders, got nil")
	}
}

func TestExportOrderCards_MultiplePages(t *testing.T) {
	in, sol := solveDefault(t)
	path := filepath.Join(t.TempDir(), "many.pdf")

	var orders []OrderInfo
	for i := 0; i < cardsPerPage+3; i++ {
		orders = append(orders, NewOrderInfo(fmt.Sprintf("Week %d production order for the teak furniture line", i+1), in, sol))
	}
	if err := ExportOrderCards(path, orders, "Rp"); err != nil {
		t.Fatalf("ExportOrderCards returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 1000 {
		t.Errorf("PDF with %d cards seems too small: %d bytes", len(orders), info.Size())
	}
}
