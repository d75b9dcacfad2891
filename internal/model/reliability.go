package model

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// RiskLevel classifies a line's failure probability.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"    // Failure ≤ 5%
	RiskMedium RiskLevel = "medium" // 5% < failure ≤ 10%
	RiskHigh   RiskLevel = "high"   // Failure > 10%
)

// Stage is one station of a series production line.
type Stage struct {
	Name        string  `json:"name" yaml:"name"`
	Reliability float64 `json:"reliability" yaml:"reliability"` // Probability in [0, 1]
}

// ReliabilityInput is an ordered series line.
type ReliabilityInput struct {
	Stages []Stage `json:"stages" yaml:"stages"`
}

// DefaultReliabilityInput returns the automotive assembly line case.
func DefaultReliabilityInput() ReliabilityInput {
	return ReliabilityInput{Stages: []Stage{
		{Name: "Stamping", Reliability: 0.98},
		{Name: "Welding", Reliability: 0.99},
		{Name: "Painting", Reliability: 0.96},
		{Name: "Assembly", Reliability: 0.97},
	}}
}

// Validate requires every reliability to be a probability.
func (in ReliabilityInput) Validate() error {
	var err error
	for i, s := range in.Stages {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("stages[%d]", i)
		}
		r := s.Reliability
		if math.IsNaN(r) || r < 0 || r > 1 {
			err = multierr.Append(err, fmt.Errorf("%w: %s reliability must be in [0, 1], got %g", ErrInvalidInput, label, r))
		}
	}
	return err
}

// ReliabilityReport is the series-system evaluation.
type ReliabilityReport struct {
	// System is the product of the stage reliabilities and Failure its complement.
	System  float64 `json:"system" yaml:"system"`
	Failure float64 `json:"failure" yaml:"failure"`
	// WeakestIndex is -1 for an empty line.
	WeakestIndex int       `json:"weakest_index" yaml:"weakest_index"`
	WeakestName  string    `json:"weakest_name" yaml:"weakest_name"`
	WeakestValue float64   `json:"weakest_value" yaml:"weakest_value"`
	FailurePct   float64   `json:"failure_pct" yaml:"failure_pct"`
	Risk         RiskLevel `json:"risk" yaml:"risk"`
}

// CalculateReliability multiplies the stage reliabilities. The weakest stage
// is the first one holding the minimum value.
func CalculateReliability(in ReliabilityInput) ReliabilityReport {
	rep := ReliabilityReport{System: 1, WeakestIndex: -1}
	for i, s := range in.Stages {
		rep.System *= s.Reliability
		if rep.WeakestIndex < 0 || s.Reliability < rep.WeakestValue {
			rep.WeakestIndex = i
			rep.WeakestName = s.Name
			rep.WeakestValue = s.Reliability
		}
	}
	rep.Failure = 1 - rep.System
	rep.FailurePct = rep.Failure * 100

	switch {
	case rep.FailurePct > 10:
		rep.Risk = RiskHigh
	case rep.FailurePct > 5:
		rep.Risk = RiskMedium
	default:
		rep.Risk = RiskLow
	}
	return rep
}
