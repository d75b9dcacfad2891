package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/export"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// productionFlags are the ways a command can describe a production input.
type productionFlags struct {
	scenario  string
	inputPath string
	productX  string
	productY  string
	profitX   float64
	profitY   float64
	resources []string
}

func (f *productionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.scenario, "scenario", "s", "", "saved scenario (ID or name) to start from")
	fs.StringVarP(&f.inputPath, "input", "i", "", "production input file (.json, .yaml or .yml)")
	fs.StringVar(&f.productX, "product-x", "", "name of the first product")
	fs.StringVar(&f.productY, "product-y", "", "name of the second product")
	fs.Float64Var(&f.profitX, "profit-x", 0, "profit per unit of the first product")
	fs.Float64Var(&f.profitY, "profit-y", 0, "profit per unit of the second product")
	fs.StringArrayVarP(&f.resources, "resource", "r", nil, "resource as NAME:RATE_X:RATE_Y:CAPACITY (repeatable, replaces the base list)")
}

// resolveProduction builds the input: an input file, else a saved scenario, else the
// configured default, then applies any flags the user set.
func (a *app) resolveProduction(cmd *cobra.Command, f *productionFlags) (model.ProductionInput, string, error) {
	var (
		in   model.ProductionInput
		name = "Current Plan"
	)
	switch {
	case f.inputPath != "":
		if err := readInputFile(f.inputPath, &in); err != nil {
			return model.ProductionInput{}, "", err
		}
	case f.scenario != "":
		store, err := a.loadStore()
		if err != nil {
			return model.ProductionInput{}, "", err
		}
		s := store.Find(f.scenario)
		if s == nil {
			return model.ProductionInput{}, "", fmt.Errorf("scenario %q not found", f.scenario)
		}
		in = s.Production.Clone()
		name = s.Name
	default:
		in = a.cfg.DefaultProduction.Clone()
	}

	fs := cmd.Flags()
	if fs.Changed("product-x") {
		in.ProductX = f.productX
	}
	if fs.Changed("product-y") {
		in.ProductY = f.productY
	}
	if fs.Changed("profit-x") {
		in.Objective.CX = f.profitX
	}
	if fs.Changed("profit-y") {
		in.Objective.CY = f.profitY
	}
	if fs.Changed("resource") {
		in.Resources = make([]model.Resource, 0, len(f.resources))
		for _, spec := range f.resources {
			n, rx, ry, c, err := parseResourceSpec(spec)
			if err != nil {
				return model.ProductionInput{}, "", err
			}
			in.Resources = append(in.Resources, model.Resource{Name: n, RateX: rx, RateY: ry, Capacity: c})
		}
	}
	return in, name, nil
}

func (a *app) productionCommand() *cobra.Command {
	var (
		pf         productionFlags
		pdfPath    string
		dxfPath    string
		cardPath   string
		withRegion bool
	)
	cmd := &cobra.Command{
		Use:     "production",
		Aliases: []string{"lp", "solve"},
		Short:   "Solve the two-product production mix",
		Long: `Finds the production mix that maximizes profit under resource limits.
Every corner point of the feasible region is evaluated; the best one is
turned into a whole-unit operating plan.`,
		Example: `  industrimath production
  industrimath production -s workshop --pdf plan.pdf
  industrimath production --profit-x 5 --profit-y 4 -r "Machine:6:4:24" -r "Labor:1:2:6"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, name, err := a.resolveProduction(cmd, &pf)
			if err != nil {
				return err
			}
			sol, err := a.opt.Optimize(in)
			if err != nil {
				return err
			}
			a.log.V(1).Info("Solved production mix", "scenario", name, "corners", len(sol.Corners), "binding", sol.Binding.Describe())

			if pdfPath != "" {
				opts := export.ReportOptions{Title: name, Currency: a.cfg.Currency, Tolerance: a.cfg.Tolerance}
				if err := export.ExportPDF(pdfPath, in, sol, opts); err != nil {
					return err
				}
				a.log.Info("Wrote PDF report", "path", pdfPath)
			}
			if dxfPath != "" {
				if err := export.ExportDXF(dxfPath, in, sol, a.cfg.Tolerance); err != nil {
					return err
				}
				a.log.Info("Wrote DXF drawing", "path", dxfPath)
			}
			if cardPath != "" {
				cards := []export.OrderInfo{export.NewOrderInfo(name, in, sol)}
				if err := export.ExportOrderCards(cardPath, cards, a.cfg.Currency); err != nil {
					return err
				}
				a.log.Info("Wrote order card", "path", cardPath)
			}

			if withRegion {
				p, err := engine.BuildProblem(in)
				if err != nil {
					return err
				}
				resp := struct {
					Solution model.Solution `json:"solution" yaml:"solution"`
					Region   []model.Point  `json:"region" yaml:"region"`
				}{sol, a.opt.FeasibleRegion(p)}
				return a.render(resp, func(w io.Writer) error {
					if err := printSolution(w, in, sol, a.cfg.Currency); err != nil {
						return err
					}
					fmt.Fprintln(w, "\nFeasible region:")
					for _, pt := range resp.Region {
						fmt.Fprintf(w, "  %s\n", pt)
					}
					return nil
				})
			}
			return a.render(sol, func(w io.Writer) error {
				return printSolution(w, in, sol, a.cfg.Currency)
			})
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF report with the feasible-region plot")
	cmd.Flags().StringVar(&dxfPath, "dxf", "", "write the feasible region as a DXF drawing")
	cmd.Flags().StringVar(&cardPath, "order-card", "", "write a printable order card PDF")
	cmd.Flags().BoolVar(&withRegion, "region", false, "include the feasible-region polygon in the output")
	return cmd
}
