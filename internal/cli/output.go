package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/export"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// render writes v as JSON or YAML, or calls text for the human format.
func (a *app) render(v any, text func(w io.Writer) error) error {
	switch a.cfg.OutputFormat {
	case model.OutputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case model.OutputYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(a.out)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printSolution(w io.Writer, in model.ProductionInput, sol model.Solution, currency string) error {
	nameX := productLabel(in.ProductX, "X")
	nameY := productLabel(in.ProductY, "Y")

	fmt.Fprintf(w, "Optimal vertex:   %s\n", sol.Vertex)
	fmt.Fprintf(w, "Objective value:  %s\n", export.FormatAmount(currency, sol.ObjectiveValue))
	fmt.Fprintf(w, "Operating plan:   %d %s, %d %s\n", sol.OperatingPoint.X, nameX, sol.OperatingPoint.Y, nameY)
	fmt.Fprintf(w, "Plan profit:      %s\n", export.FormatAmount(currency, sol.PlanProfit))
	fmt.Fprintf(w, "Binding:          %s\n\n", sol.Binding.Describe())

	tw := newTable(w)
	fmt.Fprintf(tw, "CORNER\t%s\t%s\tPROFIT\t\n", nameX, nameY)
	for i, v := range sol.Corners {
		mark := ""
		if v.Optimal {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%.4g\t%.4g\t%s\t%s\n", i+1, v.Point.X, v.Point.Y, export.FormatAmount(currency, v.Profit), mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = newTable(w)
	fmt.Fprintln(tw, "RESOURCE\tUSED\tCAPACITY\tSLACK\tUSAGE\tSTATUS")
	for _, u := range sol.Resources {
		status := "slack"
		if u.Exhausted {
			status = "exhausted"
		}
		fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%.4g\t%.1f%%\t%s\n", u.Name, u.Used, u.Capacity, u.Slack, u.Utilization*100, status)
	}
	return tw.Flush()
}

func printInventory(w io.Writer, plan model.InventoryPlan, currency string) error {
	if plan.Policy == model.PolicyUndefined {
		_, err := fmt.Fprintln(w, "No EOQ: demand and holding cost must both be positive.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Economic order quantity\t%.2f units (order %d)\n", plan.EOQ, plan.OrderQuantityU)
	fmt.Fprintf(tw, "Orders per year\t%.2f\n", plan.OrdersPerYear)
	fmt.Fprintf(tw, "Cycle length\t%.1f days\n", plan.CycleDays)
	fmt.Fprintf(tw, "Daily demand\t%.2f units\n", plan.DailyDemand)
	fmt.Fprintf(tw, "Reorder point\t%.2f units\n", plan.ReorderPoint)
	fmt.Fprintf(tw, "Ordering cost\t%s\n", export.FormatAmount(currency, plan.OrderingCost))
	fmt.Fprintf(tw, "Holding cost\t%s\n", export.FormatAmount(currency, plan.HoldingCost))
	fmt.Fprintf(tw, "Total cost\t%s\n", export.FormatAmount(currency, plan.TotalCost))
	fmt.Fprintf(tw, "Policy\t%s\n", plan.Policy)
	return tw.Flush()
}

func printQueue(w io.Writer, m model.QueueMetrics) error {
	if !m.Stable() {
		_, err := fmt.Fprintln(w, "Unstable: the service rate must exceed the arrival rate.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Utilization (rho)\t%.1f%%\t%s\n", m.Utilization*100, m.Load)
	fmt.Fprintf(tw, "In system (L)\t%.2f\t\n", m.InSystem)
	fmt.Fprintf(tw, "In queue (Lq)\t%.2f\t\n", m.InQueue)
	fmt.Fprintf(tw, "Time in system (W)\t%.2f min\t\n", m.TimeInSystemMinutes())
	fmt.Fprintf(tw, "Time in queue (Wq)\t%.2f min\t\n", m.TimeInQueueMinutes())
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = newTable(w)
	fmt.Fprintln(tw, "N\tP(N)")
	for n, p := range m.Probabilities {
		fmt.Fprintf(tw, "%d\t%.4f\n", n, p)
	}
	return tw.Flush()
}

func printReliability(w io.Writer, in model.ReliabilityInput, rep model.ReliabilityReport) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "STAGE\tRELIABILITY\t")
	for i, s := range in.Stages {
		mark := ""
		if i == rep.WeakestIndex {
			mark = "weakest"
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%s\n", s.Name, s.Reliability, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSystem reliability: %.4f\n", rep.System)
	fmt.Fprintf(w, "Failure probability: %.2f%% (%s risk)\n", rep.FailurePct, rep.Risk)
	return nil
}

func printComparison(w io.Writer, results []engine.ComparisonResult, currency string) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SCENARIO\tPLAN\tOBJECTIVE\tDELTA\tBINDING")
	for _, r := range results {
		sol := r.Solution
		fmt.Fprintf(tw, "%s\t%d / %d\t%s\t%s\t%s\n",
			r.Scenario.Name, sol.OperatingPoint.X, sol.OperatingPoint.Y,
			export.FormatAmount(currency, sol.ObjectiveValue),
			export.FormatAmount("", r.ObjectiveDelta),
			sol.Binding.Describe())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ranked := engine.RankByGain(results)
	if len(ranked) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nBest improvement first:")
	for i, r := range ranked {
		fmt.Fprintf(w, "%d. %s (%+.4g)\n", i+1, r.Scenario.Name, r.ObjectiveDelta)
	}
	return nil
}

func printBatch(w io.Writer, results []batchRow, currency string) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "SCENARIO\tPLAN\tPLAN PROFIT\tBINDING")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\terror: %s\n", r.Name, r.Error)
			continue
		}
		sol := r.Solution
		fmt.Fprintf(tw, "%s\t%d / %d\t%s\t%s\n", r.Name, sol.OperatingPoint.X, sol.OperatingPoint.Y,
			export.FormatAmount(currency, sol.PlanProfit), sol.Binding.Describe())
	}
	return tw.Flush()
}

func printScenarioList(w io.Writer, store model.ScenarioStore) error {
	if len(store.Scenarios) == 0 {
		_, err := fmt.Fprintln(w, "No scenarios saved.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tRESOURCES\tUPDATED\tDESCRIPTION")
	for _, s := range store.Scenarios {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.ID, s.Name, len(s.Production.Resources), s.UpdatedAt, s.Description)
	}
	return tw.Flush()
}

func printScenario(w io.Writer, s model.Scenario) error {
	in := s.Production
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.ID)
	if s.Description != "" {
		fmt.Fprintln(w, s.Description)
	}
	fmt.Fprintf(w, "Profit: %s %g, %s %g\n\n",
		productLabel(in.ProductX, "X"), in.Objective.CX, productLabel(in.ProductY, "Y"), in.Objective.CY)

	tw := newTable(w)
	fmt.Fprintln(tw, "RESOURCE\tRATE X\tRATE Y\tCAPACITY")
	for _, r := range in.Resources {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", r.Name, r.RateX, r.RateY, r.Capacity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nUndo steps: %d, redo steps: %d\n", len(s.History.UndoStack), len(s.History.RedoStack))
	return nil
}

func productLabel(name, fallback string) string {
	if name == "" {
		return "Product " + fallback
	}
	return name
}
