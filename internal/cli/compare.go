package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/export"
)

// comparisonOutput is the structured form of a comparison.
type comparisonOutput struct {
	Results []engine.ComparisonResult `json:"results" yaml:"results"`
	Ranking []string                  `json:"ranking" yaml:"ranking"`
}

func (a *app) compareCommand() *cobra.Command {
	var (
		pf       productionFlags
		against  []string
		xlsxPath string
	)
	cmd := &cobra.Command{
		Use:     "compare",
		Aliases: []string{"whatif"},
		Short:   "Compare the production plan with what-if alternatives",
		Long: `Solves the base plan next to its alternatives and ranks the alternatives
by objective gain. Without --against the alternatives are +10% of each
resource capacity and +10% of each product's profit.`,
		Example: `  industrimath compare
  industrimath compare -s workshop --against "workshop v2" --xlsx compare.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, name, err := a.resolveProduction(cmd, &pf)
			if err != nil {
				return err
			}

			var scenarios []engine.ComparisonScenario
			if len(against) == 0 {
				scenarios = engine.BuildDefaultScenarios(base)
			} else {
				store, err := a.loadStore()
				if err != nil {
					return err
				}
				scenarios = []engine.ComparisonScenario{{Name: name, Input: base}}
				for _, key := range against {
					s := store.Find(key)
					if s == nil {
						return fmt.Errorf("scenario %q not found", key)
					}
					scenarios = append(scenarios, engine.ComparisonScenario{Name: s.Name, Input: s.Production})
				}
			}

			results, err := a.opt.CompareScenarios(cmd.Context(), scenarios)
			if err != nil {
				return err
			}
			if xlsxPath != "" {
				if err := export.ExportComparisonXLSX(xlsxPath, results); err != nil {
					return err
				}
				a.log.Info("Wrote comparison workbook", "path", xlsxPath)
			}

			ranked := engine.RankByGain(results)
			out := comparisonOutput{Results: results, Ranking: make([]string, len(ranked))}
			for i, r := range ranked {
				out.Ranking[i] = r.Scenario.Name
			}
			return a.render(out, func(w io.Writer) error {
				return printComparison(w, results, a.cfg.Currency)
			})
		},
	}
	pf.register(cmd)
	cmd.Flags().StringArrayVar(&against, "against", nil, "saved scenario to compare with (repeatable)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the comparison to an Excel workbook")
	return cmd
}
