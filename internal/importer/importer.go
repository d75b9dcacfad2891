// Package importer reads batches of production scenarios from CSV and Excel
// files. Each row describes one resource of a scenario; consecutive rows with
// the same scenario name (or a blank one) belong together. Delimiters are
// detected automatically and headers are matched case-insensitively.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []engine.BatchItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Scenario int
	ProfitX  int
	ProfitY  int
	Resource int
	RateX    int
	RateY    int
	Capacity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"scenario": {"scenario", "name", "plan", "case"},
	"profit_x": {"profit_x", "profit x", "cx", "profit 1", "margin x"},
	"profit_y": {"profit_y", "profit y", "cy", "profit 2", "margin y"},
	"resource": {"resource", "constraint", "material", "input"},
	"rate_x":   {"rate_x", "rate x", "usage x", "use x", "ax"},
	"rate_y":   {"rate_y", "rate y", "usage y", "use y", "by"},
	"capacity": {"capacity", "cap", "limit", "available", "rhs"},
}

// positional is the column order assumed when the file has no header.
var positional = ColumnMapping{
	Scenario: 0,
	ProfitX:  1,
	ProfitY:  2,
	Resource: 3,
	RateX:    4,
	RateY:    5,
	Capacity: 6,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no cell matched a known alias.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"scenario": &mapping.Scenario,
		"profit_x": &mapping.ProfitX,
		"profit_y": &mapping.ProfitY,
		"resource": &mapping.Resource,
		"rate_x":   &mapping.RateX,
		"rate_y":   &mapping.RateY,
		"capacity": &mapping.Capacity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return positional, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber reads a required non-negative number. A decimal comma is
// accepted when the cell holds no dot.
func parseNumber(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, getCell(row, idx))
	}
	if v < 0 {
		return 0, fmt.Sprintf("%s: %s must not be negative", rowLabel, field)
	}
	return v, ""
}

// parsedRow is one resource line of a scenario.
type parsedRow struct {
	scenario  string
	objective model.Objective
	resource  model.Resource
}

// parseRow extracts a scenario resource line using the given column mapping.
// Returns the row and any error message; on error only the scenario name is set.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (parsedRow, string) {
	out := parsedRow{scenario: getCell(row, mapping.Scenario)}

	fields := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{mapping.ProfitX, "profit_x", &out.objective.CX},
		{mapping.ProfitY, "profit_y", &out.objective.CY},
		{mapping.RateX, "rate_x", &out.resource.RateX},
		{mapping.RateY, "rate_y", &out.resource.RateY},
		{mapping.Capacity, "capacity", &out.resource.Capacity},
	}
	for _, f := range fields {
		v, errMsg := parseNumber(row, f.idx, f.name, rowLabel)
		if errMsg != "" {
			return parsedRow{scenario: out.scenario}, errMsg
		}
		*f.dst = v
	}
	out.resource.Name = getCell(row, mapping.Resource)
	return out, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports production scenarios from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports production scenarios from a CSV reader with a
// known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports production scenarios from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go to
// ImportExcel, everything else is read as CSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and groups resource rows into scenarios.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		for _, c := range []struct {
			idx  int
			name string
		}{
			{mapping.ProfitX, "Profit X"},
			{mapping.ProfitY, "Profit Y"},
			{mapping.RateX, "Rate X"},
			{mapping.RateY, "Rate Y"},
			{mapping.Capacity, "Capacity"},
		} {
			if c.idx == -1 {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) > mapping.ProfitX {
		// An unrecognized header still has a non-numeric profit cell.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][mapping.ProfitX]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	var (
		current  *engine.BatchItem
		rejected bool
	)
	flush := func() {
		if current != nil && !rejected {
			result.Items = append(result.Items, *current)
		}
		current = nil
		rejected = false
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		parsed, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			// One bad line rejects its whole scenario.
			if current == nil || (parsed.scenario != "" && parsed.scenario != current.Name) {
				flush()
				current = &engine.BatchItem{Name: parsed.scenario}
			}
			rejected = true
			continue
		}

		if current == nil || (parsed.scenario != "" && parsed.scenario != current.Name) {
			flush()
			name := parsed.scenario
			if name == "" {
				name = fmt.Sprintf("Scenario %d", len(result.Items)+1)
			}
			current = &engine.BatchItem{
				Name:  name,
				Input: model.ProductionInput{Objective: parsed.objective},
			}
		} else if parsed.objective != current.Input.Objective {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Profit differs from the first row of %q, keeping the first", rowLabel, current.Name))
		}

		if len(current.Input.Resources) == model.MaxResources {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: Scenario %q has more than %d resources", rowLabel, current.Name, model.MaxResources))
			rejected = true
			continue
		}
		res := parsed.resource
		if res.Name == "" {
			res.Name = fmt.Sprintf("Resource %d", len(current.Input.Resources)+1)
		}
		current.Input.Resources = append(current.Input.Resources, res)
	}
	flush()

	return result
}
