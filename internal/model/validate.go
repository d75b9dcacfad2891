package model

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

var (
	// ErrInvalidInput marks a negative, NaN or infinite model parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoResources is returned for a production problem without constraints.
	ErrNoResources = errors.New("at least one resource is required")
	// ErrTooManyResources is returned when a problem exceeds MaxResources.
	ErrTooManyResources = fmt.Errorf("at most %d resources are supported", MaxResources)
)

// nonNegative checks that v is a finite number ≥ 0.
func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidInput, field, v)
	}
	return nil
}

// Validate reports every problem with the production input at once.
func (in ProductionInput) Validate() error {
	var err error
	err = multierr.Append(err, nonNegative("objective.cx", in.Objective.CX))
	err = multierr.Append(err, nonNegative("objective.cy", in.Objective.CY))

	switch {
	case len(in.Resources) == 0:
		err = multierr.Append(err, ErrNoResources)
	case len(in.Resources) > MaxResources:
		err = multierr.Append(err, fmt.Errorf("%w, got %d", ErrTooManyResources, len(in.Resources)))
	}
	for i, r := range in.Resources {
		label := r.Name
		if label == "" {
			label = fmt.Sprintf("resources[%d]", i)
		}
		err = multierr.Append(err, nonNegative(label+".rate_x", r.RateX))
		err = multierr.Append(err, nonNegative(label+".rate_y", r.RateY))
		err = multierr.Append(err, nonNegative(label+".capacity", r.Capacity))
	}
	return err
}

// ValidationErrors splits an aggregated validation error into its parts. The
// aggregate is found even when callers have wrapped it with %w.
func ValidationErrors(err error) []error {
	var agg interface{ Errors() []error }
	if errors.As(err, &agg) {
		return agg.Errors()
	}
	return multierr.Errors(err)
}
