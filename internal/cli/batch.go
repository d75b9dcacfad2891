package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/export"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/importer"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// batchRow is one batch result in printable form.
type batchRow struct {
	Name     string         `json:"name" yaml:"name"`
	Solution model.Solution `json:"solution,omitempty" yaml:"solution,omitempty"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) batchCommand() *cobra.Command {
	var (
		xlsxPath  string
		cardsPath string
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Solve every production scenario in a CSV or Excel file",
		Long: `Reads one resource per row: scenario, profit x, profit y, resource,
rate x, rate y and capacity. Rows with the same scenario name (or a blank
one) belong to the same scenario. Scenarios are solved concurrently on
--workers goroutines; an invalid scenario is reported and skipped.`,
		Example: `  industrimath batch plans.csv --xlsx results.xlsx
  industrimath batch plans.xlsx --cards orders.pdf --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported := importer.ImportFile(args[0])
			for _, w := range imported.Warnings {
				a.log.V(1).Info("Import note", "file", args[0], "note", w)
			}
			for _, e := range imported.Errors {
				a.log.Info("Skipped import row", "file", args[0], "problem", e)
			}
			if len(imported.Items) == 0 {
				if len(imported.Errors) > 0 {
					return fmt.Errorf("no scenarios imported from %s: %s", args[0], strings.Join(imported.Errors, "; "))
				}
				return errors.New("no scenarios imported from " + args[0])
			}

			results, err := a.opt.OptimizeBatch(cmd.Context(), imported.Items, a.cfg.Workers)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := export.ExportBatchXLSX(xlsxPath, results); err != nil {
					return err
				}
				a.log.Info("Wrote batch workbook", "path", xlsxPath)
			}
			if cardsPath != "" {
				if err := export.ExportOrderCards(cardsPath, orderCards(results), a.cfg.Currency); err != nil {
					return err
				}
				a.log.Info("Wrote order cards", "path", cardsPath)
			}

			rows := batchRows(results)
			return a.render(rows, func(w io.Writer) error {
				return printBatch(w, rows, a.cfg.Currency)
			})
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the results to an Excel workbook")
	cmd.Flags().StringVar(&cardsPath, "cards", "", "write one order card per solved scenario to a PDF")
	return cmd
}

func batchRows(results []engine.BatchResult) []batchRow {
	rows := make([]batchRow, len(results))
	for i, r := range results {
		rows[i] = batchRow{Name: r.Name, Solution: r.Solution}
		if r.Err != nil {
			rows[i] = batchRow{Name: r.Name, Error: r.Err.Error()}
		}
	}
	return rows
}

// orderCards builds cards for the scenarios that solved.
func orderCards(results []engine.BatchResult) []export.OrderInfo {
	var cards []export.OrderInfo
	for _, r := range results {
		if r.Err == nil {
			cards = append(cards, export.NewOrderInfo(r.Name, r.Input, r.Solution))
		}
	}
	return cards
}
