package model

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// DaysPerYear is the trading-year length the reorder calculations use.
const DaysPerYear = 360

// OrderPolicy classifies an order quantity relative to annual demand.
type OrderPolicy string

const (
	PolicyBalanced      OrderPolicy = "balanced"       // D/12 ≤ Q ≤ D/4
	PolicyLowFrequency  OrderPolicy = "low_frequency"  // Few large orders: Q > D/4
	PolicyHighFrequency OrderPolicy = "high_frequency" // Many small orders: Q < D/12
	PolicyUndefined     OrderPolicy = "undefined"      // No EOQ could be computed
)

// InventoryInput holds the parameters of the EOQ/ROP model.
type InventoryInput struct {
	AnnualDemand  float64 `json:"annual_demand" yaml:"annual_demand"`   // D, units per year
	OrderCost     float64 `json:"order_cost" yaml:"order_cost"`         // S, cost per order
	HoldingCost   float64 `json:"holding_cost" yaml:"holding_cost"`     // H, cost per unit per year
	LeadTimeDays  float64 `json:"lead_time_days" yaml:"lead_time_days"` // Supplier lead time
	SafetyStock   float64 `json:"safety_stock" yaml:"safety_stock"`     // Buffer units
	DaysPerPeriod int     `json:"days_per_year,omitempty" yaml:"days_per_year,omitempty"`
}

// DefaultInventoryInput returns the coffee roaster case.
func DefaultInventoryInput() InventoryInput {
	return InventoryInput{
		AnnualDemand:  1200,
		OrderCost:     500000,
		HoldingCost:   25000,
		LeadTimeDays:  14,
		SafetyStock:   10,
		DaysPerPeriod: DaysPerYear,
	}
}

// Validate rejects negative or non-finite parameters.
func (in InventoryInput) Validate() error {
	var err error
	err = multierr.Append(err, nonNegative("annual_demand", in.AnnualDemand))
	err = multierr.Append(err, nonNegative("order_cost", in.OrderCost))
	err = multierr.Append(err, nonNegative("holding_cost", in.HoldingCost))
	err = multierr.Append(err, nonNegative("lead_time_days", in.LeadTimeDays))
	err = multierr.Append(err, nonNegative("safety_stock", in.SafetyStock))
	if in.DaysPerPeriod < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: days_per_year must be >= 0, got %d", ErrInvalidInput, in.DaysPerPeriod))
	}
	return err
}

// InventoryPlan is the result of the EOQ/ROP calculation.
type InventoryPlan struct {
	EOQ            float64     `json:"eoq" yaml:"eoq"`
	OrdersPerYear  float64     `json:"orders_per_year" yaml:"orders_per_year"`
	OrderingCost   float64     `json:"ordering_cost" yaml:"ordering_cost"`
	HoldingCost    float64     `json:"holding_cost" yaml:"holding_cost"`
	TotalCost      float64     `json:"total_cost" yaml:"total_cost"`
	DailyDemand    float64     `json:"daily_demand" yaml:"daily_demand"`
	ReorderPoint   float64     `json:"reorder_point" yaml:"reorder_point"`
	CycleDays      float64     `json:"cycle_days" yaml:"cycle_days"`
	Policy         OrderPolicy `json:"policy" yaml:"policy"`
	ReorderAtDay   float64     `json:"reorder_at_day" yaml:"reorder_at_day"` // Day within a cycle the reorder is placed; ≤ 0 means before the cycle starts
	OrderQuantityU int         `json:"order_quantity_units" yaml:"order_quantity_units"`
}

func (in InventoryInput) days() float64 {
	if in.DaysPerPeriod <= 0 {
		return DaysPerYear
	}
	return float64(in.DaysPerPeriod)
}

// CalculateInventoryPlan computes Q* = sqrt(2DS/H), the reorder point and the
// resulting annual costs. Non-positive demand or holding cost yields the zero plan.
func CalculateInventoryPlan(in InventoryInput) InventoryPlan {
	if in.HoldingCost <= 0 || in.AnnualDemand <= 0 {
		return InventoryPlan{Policy: PolicyUndefined}
	}
	days := in.days()

	eoq := math.Sqrt(2 * in.AnnualDemand * in.OrderCost / in.HoldingCost)
	var freq, ordering float64
	if eoq > 0 {
		freq = in.AnnualDemand / eoq
		ordering = freq * in.OrderCost
	}
	holding := eoq / 2 * in.HoldingCost
	daily := in.AnnualDemand / days
	var cycle float64
	if freq > 0 {
		cycle = days / freq
	}

	plan := InventoryPlan{
		EOQ:            eoq,
		OrdersPerYear:  freq,
		OrderingCost:   ordering,
		HoldingCost:    holding,
		TotalCost:      ordering + holding,
		DailyDemand:    daily,
		ReorderPoint:   daily*in.LeadTimeDays + in.SafetyStock,
		CycleDays:      cycle,
		ReorderAtDay:   cycle - in.LeadTimeDays,
		OrderQuantityU: int(math.Round(eoq)),
	}

	switch {
	case eoq > in.AnnualDemand/4:
		plan.Policy = PolicyLowFrequency
	case eoq < in.AnnualDemand/12:
		plan.Policy = PolicyHighFrequency
	default:
		plan.Policy = PolicyBalanced
	}
	return plan
}

// CostPoint is one sample of the inventory cost curves.
type CostPoint struct {
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Holding  float64 `json:"holding" yaml:"holding"`
	Ordering float64 `json:"ordering" yaml:"ordering"`
	Total    float64 `json:"total" yaml:"total"`
}

// CostCurve samples holding, ordering and total cost at n evenly spaced order
// quantities from max(1, 0.1·Q*) to 2·Q* (or 200 when no EOQ exists).
func CostCurve(in InventoryInput, plan InventoryPlan, n int) []CostPoint {
	if n < 2 {
		n = 2
	}
	lo := math.Max(1, plan.EOQ*0.1)
	hi := 200.0
	if plan.EOQ > 0 {
		hi = plan.EOQ * 2
	}
	step := (hi - lo) / float64(n-1)
	out := make([]CostPoint, n)
	for i := range out {
		q := lo + float64(i)*step
		h := q / 2 * in.HoldingCost
		o := in.AnnualDemand / q * in.OrderCost
		out[i] = CostPoint{Quantity: q, Holding: h, Ordering: o, Total: h + o}
	}
	return out
}

// StockLevel is one sample of the simulated on-hand inventory.
type StockLevel struct {
	Day   float64 `json:"day" yaml:"day"`
	Units float64 `json:"units" yaml:"units"`
}

// SimulateCycle samples on-hand stock over two order cycles: each cycle starts
// at Q* plus safety stock and draws down at the daily demand rate.
func SimulateCycle(in InventoryInput, plan InventoryPlan, n int) []StockLevel {
	if plan.CycleDays <= 0 || plan.EOQ <= 0 || n < 2 {
		return nil
	}
	span := plan.CycleDays * 2
	step := span / float64(n-1)
	out := make([]StockLevel, n)
	for i := range out {
		t := float64(i) * step
		inCycle := math.Mod(t, plan.CycleDays)
		out[i] = StockLevel{Day: t, Units: plan.EOQ + in.SafetyStock - plan.DailyDemand*inCycle}
	}
	return out
}
