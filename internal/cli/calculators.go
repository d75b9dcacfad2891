package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// calculatorSource picks the base input of a calculator command.
type calculatorSource struct {
	scenario  string
	inputPath string
}

func (s *calculatorSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.scenario, "scenario", "s", "", "saved scenario (ID or name) holding the parameters")
	cmd.Flags().StringVarP(&s.inputPath, "input", "i", "", "parameter file (.json, .yaml or .yml)")
}

// loadCalculatorInput fills v from the input file, or from the part of a
// saved scenario that pick returns. v is left alone when neither was given.
func loadCalculatorInput[T any](a *app, src calculatorSource, v *T, pick func(*model.Scenario) *T, what string) error {
	switch {
	case src.inputPath != "":
		return readInputFile(src.inputPath, v)
	case src.scenario != "":
		store, err := a.loadStore()
		if err != nil {
			return err
		}
		s := store.Find(src.scenario)
		if s == nil {
			return fmt.Errorf("scenario %q not found", src.scenario)
		}
		part := pick(s)
		if part == nil {
			return fmt.Errorf("scenario %q has no %s parameters", s.Name, what)
		}
		*v = *part
	}
	return nil
}

func (a *app) inventoryCommand() *cobra.Command {
	var (
		src  calculatorSource
		flag model.InventoryInput
	)
	def := model.DefaultInventoryInput()
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"eoq"},
		Short:   "Economic order quantity and reorder point",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := model.DefaultInventoryInput()
			if err := loadCalculatorInput(a, src, &in, func(s *model.Scenario) *model.InventoryInput { return s.Inventory }, "inventory"); err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("demand") {
				in.AnnualDemand = flag.AnnualDemand
			}
			if fs.Changed("order-cost") {
				in.OrderCost = flag.OrderCost
			}
			if fs.Changed("holding-cost") {
				in.HoldingCost = flag.HoldingCost
			}
			if fs.Changed("lead-time") {
				in.LeadTimeDays = flag.LeadTimeDays
			}
			if fs.Changed("safety-stock") {
				in.SafetyStock = flag.SafetyStock
			}
			if in.DaysPerPeriod == 0 || fs.Changed("days-per-year") {
				in.DaysPerPeriod = a.cfg.DaysPerYear
			}
			if err := in.Validate(); err != nil {
				return err
			}

			plan := model.CalculateInventoryPlan(in)
			a.log.V(1).Info("Calculated inventory plan", "eoq", plan.EOQ, "policy", string(plan.Policy))
			return a.render(plan, func(w io.Writer) error {
				return printInventory(w, plan, a.cfg.Currency)
			})
		},
	}
	src.register(cmd)
	fs := cmd.Flags()
	fs.Float64Var(&flag.AnnualDemand, "demand", def.AnnualDemand, "annual demand in units")
	fs.Float64Var(&flag.OrderCost, "order-cost", def.OrderCost, "cost per order")
	fs.Float64Var(&flag.HoldingCost, "holding-cost", def.HoldingCost, "holding cost per unit per year")
	fs.Float64Var(&flag.LeadTimeDays, "lead-time", def.LeadTimeDays, "supplier lead time in days")
	fs.Float64Var(&flag.SafetyStock, "safety-stock", def.SafetyStock, "safety stock in units")
	return cmd
}

func (a *app) queueCommand() *cobra.Command {
	var (
		src  calculatorSource
		flag model.QueueInput
	)
	def := model.DefaultQueueInput()
	cmd := &cobra.Command{
		Use:     "queue",
		Aliases: []string{"mm1"},
		Short:   "Single-server M/M/1 queue measures",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := model.DefaultQueueInput()
			if err := loadCalculatorInput(a, src, &in, func(s *model.Scenario) *model.QueueInput { return s.Queue }, "queue"); err != nil {
				return err
			}
			if cmd.Flags().Changed("arrival") {
				in.ArrivalRate = flag.ArrivalRate
			}
			if cmd.Flags().Changed("service") {
				in.ServiceRate = flag.ServiceRate
			}
			if err := in.Validate(); err != nil {
				return err
			}

			m := model.CalculateQueue(in)
			if !m.Stable() {
				a.log.Info("Queue is unstable", "arrival_rate", in.ArrivalRate, "service_rate", in.ServiceRate)
			}
			return a.render(m, func(w io.Writer) error {
				return printQueue(w, m)
			})
		},
	}
	src.register(cmd)
	cmd.Flags().Float64Var(&flag.ArrivalRate, "arrival", def.ArrivalRate, "arrival rate per hour (lambda)")
	cmd.Flags().Float64Var(&flag.ServiceRate, "service", def.ServiceRate, "service rate per hour (mu)")
	return cmd
}

func (a *app) reliabilityCommand() *cobra.Command {
	var (
		src    calculatorSource
		stages []string
	)
	cmd := &cobra.Command{
		Use:   "reliability",
		Short: "Reliability of a series production line",
		Example: `  industrimath reliability
  industrimath reliability --stage Cutting=0.99 --stage Sewing=0.95`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := model.DefaultReliabilityInput()
			if err := loadCalculatorInput(a, src, &in, func(s *model.Scenario) *model.ReliabilityInput { return s.Reliability }, "reliability"); err != nil {
				return err
			}
			if cmd.Flags().Changed("stage") {
				in.Stages = make([]model.Stage, 0, len(stages))
				for _, spec := range stages {
					name, r, err := parseNamedValue(spec)
					if err != nil {
						return err
					}
					in.Stages = append(in.Stages, model.Stage{Name: name, Reliability: r})
				}
			}
			if err := in.Validate(); err != nil {
				return err
			}

			rep := model.CalculateReliability(in)
			return a.render(rep, func(w io.Writer) error {
				return printReliability(w, in, rep)
			})
		},
	}
	src.register(cmd)
	cmd.Flags().StringArrayVar(&stages, "stage", nil, "stage as NAME=RELIABILITY (repeatable, replaces the default line)")
	return cmd
}
