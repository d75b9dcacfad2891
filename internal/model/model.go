package model

import (
	"fmt"
	"math"
)

// UnitPolicy selects how the continuous optimum is turned into an operating plan.
type UnitPolicy string

const (
	UnitPolicyFloor UnitPolicy = "floor" // Truncate each coordinate toward zero
)

func (p UnitPolicy) String() string {
	return string(p)
}

// Valid reports whether p is a supported unit policy.
func (p UnitPolicy) Valid() bool {
	return p == UnitPolicyFloor
}

// MaxResources bounds the number of resource constraints one problem may carry.
// Vertex enumeration is pairwise, so the bound keeps every solve constant-time.
const MaxResources = 6

// ExhaustedThreshold is the slack (in resource units) below which a resource
// counts as used up at the operating point.
const ExhaustedThreshold = 1.0

// Objective holds the per-unit profit of the two products.
type Objective struct {
	CX float64 `json:"cx" yaml:"cx"` // Profit per unit of product X
	CY float64 `json:"cy" yaml:"cy"` // Profit per unit of product Y
}

// Value evaluates the objective at p.
func (o Objective) Value(p Point) float64 {
	return o.CX*p.X + o.CY*p.Y
}

// Resource is a limited input shared by both products.
type Resource struct {
	Name     string  `json:"name" yaml:"name"`
	RateX    float64 `json:"rate_x" yaml:"rate_x"`     // Consumption per unit of product X
	RateY    float64 `json:"rate_y" yaml:"rate_y"`     // Consumption per unit of product Y
	Capacity float64 `json:"capacity" yaml:"capacity"` // Total available
}

// ProductionInput is everything the production-mix model needs.
type ProductionInput struct {
	ProductX  string     `json:"product_x" yaml:"product_x"`
	ProductY  string     `json:"product_y" yaml:"product_y"`
	Objective Objective  `json:"objective" yaml:"objective"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

// DefaultProductionInput returns the furniture workshop case: tables and
// chairs competing for labor hours and teak wood.
func DefaultProductionInput() ProductionInput {
	return ProductionInput{
		ProductX:  "Table",
		ProductY:  "Chair",
		Objective: Objective{CX: 750000, CY: 300000},
		Resources: []Resource{
			{Name: "Labor hours", RateX: 6, RateY: 2, Capacity: 240},
			{Name: "Teak wood", RateX: 4, RateY: 1.5, Capacity: 120},
		},
	}
}

// Clone returns a deep copy of the input.
func (in ProductionInput) Clone() ProductionInput {
	out := in
	if in.Resources != nil {
		out.Resources = make([]Resource, len(in.Resources))
		copy(out.Resources, in.Resources)
	}
	return out
}

// Point is a production mix: X units of the first product, Y of the second.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Near reports whether p and q agree in both coordinates within tol, taken
// relative to the larger magnitude once that exceeds 1.
func (p Point) Near(q Point, tol float64) bool {
	return approxEqual(p.X, q.X, tol) && approxEqual(p.Y, q.Y, tol)
}

func approxEqual(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// Less orders points lexicographically by (X, Y).
func (p Point) Less(q Point) bool {
	return p.X < q.X || (p.X == q.X && p.Y < q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// UnitPoint is an operating plan in whole production units.
type UnitPoint struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Float converts the plan back to a Point.
func (u UnitPoint) Float() Point {
	return Point{X: float64(u.X), Y: float64(u.Y)}
}

// Intercept is where a constraint boundary meets an axis. A zero coefficient
// makes the boundary parallel to that axis, in which case Finite is false and
// Value carries no meaning.
type Intercept struct {
	Value  float64
	Finite bool
}

// NoIntercept is the "boundary never reaches this axis" variant.
var NoIntercept = Intercept{}

// Constraint is a linear resource limit: A·x + B·y ≤ Limit.
type Constraint struct {
	A     float64 `json:"a" yaml:"a"`
	B     float64 `json:"b" yaml:"b"`
	Limit float64 `json:"limit" yaml:"limit"`
}

// Usage evaluates the left-hand side at p.
func (c Constraint) Usage(p Point) float64 {
	return c.A*p.X + c.B*p.Y
}

// XIntercept returns the boundary's crossing of the x axis.
func (c Constraint) XIntercept() Intercept {
	if c.A == 0 {
		return NoIntercept
	}
	return Intercept{Value: c.Limit / c.A, Finite: true}
}

// YIntercept returns the boundary's crossing of the y axis.
func (c Constraint) YIntercept() Intercept {
	if c.B == 0 {
		return NoIntercept
	}
	return Intercept{Value: c.Limit / c.B, Finite: true}
}

// Problem is a built production-mix instance. It is immutable: accessors
// hand out copies so a solve can never alter the caller's problem.
type Problem struct {
	objective   Objective
	constraints []Constraint
	names       []string
}

// NewProblem assembles a problem from already-validated parts. Callers
// outside the engine should go through engine.BuildProblem.
func NewProblem(objective Objective, constraints []Constraint, names []string) *Problem {
	cs := make([]Constraint, len(constraints))
	copy(cs, constraints)
	ns := make([]string, len(constraints))
	copy(ns, names)
	return &Problem{objective: objective, constraints: cs, names: ns}
}

// Objective returns the profit coefficients.
func (p *Problem) Objective() Objective {
	return p.objective
}

// NumConstraints returns the number of resource constraints.
func (p *Problem) NumConstraints() int {
	return len(p.constraints)
}

// Constraint returns the i-th constraint.
func (p *Problem) Constraint(i int) Constraint {
	return p.constraints[i]
}

// ResourceName returns the label of the i-th resource.
func (p *Problem) ResourceName(i int) string {
	if i < 0 || i >= len(p.names) {
		return ""
	}
	return p.names[i]
}

// Vertex is a feasible corner point with its objective value.
type Vertex struct {
	Point   Point   `json:"point" yaml:"point"`
	Profit  float64 `json:"profit" yaml:"profit"`
	Optimal bool    `json:"optimal" yaml:"optimal"`
}

// ResourceUsage reports one resource at the operating point.
type ResourceUsage struct {
	Name        string  `json:"name" yaml:"name"`
	Used        float64 `json:"used" yaml:"used"`
	Capacity    float64 `json:"capacity" yaml:"capacity"`
	Slack       float64 `json:"slack" yaml:"slack"`
	Utilization float64 `json:"utilization" yaml:"utilization"` // Used / Capacity, 0 when Capacity is 0
	Exhausted   bool    `json:"exhausted" yaml:"exhausted"`
}

// BindingKind classifies which resources limit the operating point.
type BindingKind int

const (
	BindingSlack    BindingKind = iota // Every resource has slack left
	BindingResource                    // One resource is exhausted
	BindingAll                         // All resources are exhausted
)

func (k BindingKind) String() string {
	switch k {
	case BindingResource:
		return "resource"
	case BindingAll:
		return "all"
	default:
		return "slack"
	}
}

// MarshalText encodes the kind by name.
func (k BindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *BindingKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "slack":
		*k = BindingSlack
	case "resource":
		*k = BindingResource
	case "all":
		*k = BindingAll
	default:
		return fmt.Errorf("unknown binding kind %q", string(b))
	}
	return nil
}

// Binding is the resource classification at the operating point.
// Resource is the index of the exhausted resource for BindingResource, -1 otherwise.
type Binding struct {
	Kind     BindingKind `json:"kind" yaml:"kind"`
	Resource int         `json:"resource" yaml:"resource"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
}

// Describe renders the classification for reports.
func (b Binding) Describe() string {
	switch b.Kind {
	case BindingAll:
		return "all resources exhausted"
	case BindingResource:
		if b.Name == "" {
			return fmt.Sprintf("resource %d exhausted", b.Resource+1)
		}
		return b.Name + " exhausted"
	default:
		return "every resource has slack"
	}
}

// Solution is the outcome of one production-mix solve.
type Solution struct {
	// OperatingPoint is the continuous optimum with the unit policy applied.
	OperatingPoint UnitPoint `json:"operating_point" yaml:"operating_point"`
	// Vertex is the continuous optimum the operating point was derived from.
	Vertex Point `json:"vertex" yaml:"vertex"`
	// ObjectiveValue is the objective at Vertex.
	ObjectiveValue float64 `json:"objective_value" yaml:"objective_value"`
	// PlanProfit is the objective at OperatingPoint.
	PlanProfit float64         `json:"plan_profit" yaml:"plan_profit"`
	Feasible   bool            `json:"feasible" yaml:"feasible"`
	Corners    []Vertex        `json:"corners" yaml:"corners"`
	Resources  []ResourceUsage `json:"resources" yaml:"resources"`
	Binding    Binding         `json:"binding" yaml:"binding"`
}

// ZeroSolution is the trivial plan: produce nothing.
func ZeroSolution() Solution {
	return Solution{
		Feasible: true,
		Corners:  []Vertex{{Optimal: true}},
		Binding:  Binding{Kind: BindingSlack, Resource: -1},
	}
}
