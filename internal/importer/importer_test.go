package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Scenario,CX,CY,Resource,A,B,Capacity\nWorkshop,750000,300000,Labor,6,2,240\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Scenario;CX;CY;Resource;A;B;Capacity\nWorkshop;750000;300000;Wood;4;1,5;120\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Scenario\tCX\tCY\nWorkshop\t1\t2\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Scenario|CX|CY\nWorkshop|1|2\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Scenario", "Profit_X", "Profit_Y", "Resource", "Rate_X", "Rate_Y", "Capacity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping != positional {
		t.Errorf("expected standard order, got %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	row := []string{"LIMIT", "Use Y", "Use X", "Material", "Margin Y", "Margin X", "Plan"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Scenario: 6, ProfitX: 5, ProfitY: 4, Resource: 3, RateX: 2, RateY: 1, Capacity: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Workshop", "750000", "300000", "Labor", "6", "2", "240"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positional {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

const workshopCSV = `Scenario,Profit X,Profit Y,Resource,Rate X,Rate Y,Capacity
Workshop,750000,300000,Labor hours,6,2,240
Workshop,750000,300000,Teak wood,4,1.5,120
Bakery,3,5,Oven,1,0,4
,3,5,Mixer,0,2,12
,3,5,,3,2,18
`

func TestImportCSVFromReader_GroupsScenarios(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(workshopCSV), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(result.Items))
	}

	ws := result.Items[0]
	if ws.Name != "Workshop" {
		t.Errorf("expected 'Workshop', got %q", ws.Name)
	}
	if ws.Input.Objective.CX != 750000 || ws.Input.Objective.CY != 300000 {
		t.Errorf("unexpected objective %+v", ws.Input.Objective)
	}
	if len(ws.Input.Resources) != 2 || ws.Input.Resources[1].Name != "Teak wood" || ws.Input.Resources[1].RateY != 1.5 {
		t.Errorf("unexpected resources %+v", ws.Input.Resources)
	}

	bakery := result.Items[1]
	if len(bakery.Input.Resources) != 3 {
		t.Fatalf("blank scenario cells should continue Bakery, got %d resources", len(bakery.Input.Resources))
	}
	if bakery.Input.Resources[2].Name != "Resource 3" {
		t.Errorf("expected generated name 'Resource 3', got %q", bakery.Input.Resources[2].Name)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Workshop,750000,300000,Labor,6,2,240\nWorkshop,750000,300000,Wood,4,1.5,120\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 scenario, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if len(result.Items[0].Input.Resources) != 2 {
		t.Errorf("expected 2 resources, got %d", len(result.Items[0].Input.Resources))
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "Kasus,Untung1,Untung2,Sumber,P,Q,R\nWorkshop,1,2,Labor,1,1,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 scenario, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "header") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_UnnamedScenario(t *testing.T) {
	data := ",1,2,Labor,1,1,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 || result.Items[0].Name != "Scenario 1" {
		t.Fatalf("expected generated name 'Scenario 1', got %+v", result.Items)
	}
}

func TestImportCSVFromReader_SemicolonDecimalComma(t *testing.T) {
	data := "Scenario;CX;CY;Resource;AX;BY;Capacity\nWorkshop;750000;300000;Wood;4;1,5;120\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := result.Items[0].Input.Resources[0].RateY; got != 1.5 {
		t.Errorf("expected rate 1.5, got %g", got)
	}
}

func TestImportCSVFromReader_BadRowRejectsScenario(t *testing.T) {
	data := `Scenario,CX,CY,Resource,AX,BY,Capacity
Good,1,1,R1,1,1,4
Broken,1,1,R1,1,1,4
Broken,1,1,R2,x,1,4
Broken,1,1,R3,1,1,4
Negative,1,1,R1,1,1,-4
Also good,2,1,R1,1,1,4
`
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 valid scenarios, got %d", len(result.Items))
	}
	if result.Items[0].Name != "Good" || result.Items[1].Name != "Also good" {
		t.Errorf("unexpected scenarios %q, %q", result.Items[0].Name, result.Items[1].Name)
	}
	if !strings.Contains(result.Errors[0], "Line 4") || !strings.Contains(result.Errors[0], "rate_x") {
		t.Errorf("error should name the line and field, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_TooManyResources(t *testing.T) {
	var b strings.Builder
	b.WriteString("Scenario,CX,CY,Resource,AX,BY,Capacity\n")
	for i := 0; i < 7; i++ {
		b.WriteString("Big,1,1,,1,1,10\n")
	}
	result := ImportCSVFromReader(strings.NewReader(b.String()), ',')

	if len(result.Items) != 0 {
		t.Errorf("scenario with 7 resources must be rejected, got %d items", len(result.Items))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_ProfitMismatchWarns(t *testing.T) {
	data := "Scenario,CX,CY,Resource,AX,BY,Capacity\nW,1,1,R1,1,1,4\nW,2,1,R2,1,0,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 || result.Items[0].Input.Objective.CX != 1 {
		t.Fatalf("expected the first profit to win, got %+v", result.Items)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Profit differs") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a profit warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Scenario,CX,CY,Resource,AX,BY\nW,1,1,R1,1,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Capacity") {
		t.Errorf("expected missing Capacity error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "W,1,1,R1,1,1,4\n,,,,,,\nW,1,1,R2,1,0,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Items) != 1 || len(result.Items[0].Input.Resources) != 2 {
		t.Errorf("empty rows should be skipped, got %+v", result.Items)
	}
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(workshopCSV, ",", ";")), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 scenarios, got %d", len(result.Items))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) == 0 || result.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Scenario", "CX", "CY", "Resource", "Rate X", "Rate Y", "Capacity"},
		{"Workshop", 750000, 300000, "Labor hours", 6, 2, 240},
		{"Workshop", 750000, 300000, "Teak wood", 4, 1.5, 120},
	})

	result := ImportFile(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(result.Items))
	}
	in := result.Items[0].Input
	if in.Objective.CX != 750000 {
		t.Errorf("expected profit 750000, got %g", in.Objective.CX)
	}
	if len(in.Resources) != 2 || in.Resources[1].RateY != 1.5 {
		t.Errorf("unexpected resources %+v", in.Resources)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"A", 1, 2, "R1", 1, 1, 4},
		{"B", 2, 1, "R1", 1, 1, 4},
	})

	result := ImportExcel(path)
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 scenarios, got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Scenario", "CX", "CY", "Resource", "Rate X", "Rate Y", "Capacity"},
		{"W", "lots", 1, "R1", 1, 1, 4},
	})

	result := ImportExcel(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for non-numeric profit")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected no scenarios, got %d", len(result.Items))
	}
}
