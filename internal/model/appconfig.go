package model

import (
	"fmt"

	"go.uber.org/multierr"
)

// DefaultTolerance is the absolute ε used for feasibility, deduplication and
// tie-break comparisons. It absorbs the round-off of the 2×2 boundary solve
// for coefficients and capacities in the 1e-3 .. 1e6 range.
const DefaultTolerance = 1e-6

// maxTolerance keeps a misconfigured ε from merging genuinely distinct vertices.
const maxTolerance = 1e-2

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Solver settings
	Tolerance  float64    `json:"tolerance" mapstructure:"tolerance"`
	UnitPolicy UnitPolicy `json:"unit_policy" mapstructure:"unit_policy"`

	// Report settings
	Currency     string `json:"currency" mapstructure:"currency"`
	DaysPerYear  int    `json:"days_per_year" mapstructure:"days_per_year"`
	OutputFormat string `json:"output_format" mapstructure:"output_format"`

	// Batch and service settings
	Workers    int    `json:"workers" mapstructure:"workers"`
	ServerAddr string `json:"server_addr" mapstructure:"server_addr"`

	// Logging
	LogLevel  string `json:"log_level" mapstructure:"log_level"`   // "debug", "info", "warn", "error"
	LogFormat string `json:"log_format" mapstructure:"log_format"` // "console" or "json"

	// Production input used when a command is given no scenario
	// Kept in the config file only; environment and flags cannot set them.
	DefaultProduction ProductionInput `json:"default_production" mapstructure:"-"`

	RecentScenarios []string `json:"recent_scenarios" mapstructure:"-"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Tolerance:         DefaultTolerance,
		UnitPolicy:        UnitPolicyFloor,
		Currency:          "Rp",
		DaysPerYear:       DaysPerYear,
		OutputFormat:      OutputText,
		Workers:           4,
		ServerAddr:        ":8080",
		LogLevel:          "info",
		LogFormat:         "console",
		DefaultProduction: DefaultProductionInput(),
		RecentScenarios:   []string{},
	}
}

// Validate checks ranges and enumerations.
func (c AppConfig) Validate() error {
	var err error
	if !(c.Tolerance > 0 && c.Tolerance <= maxTolerance) {
		err = multierr.Append(err, fmt.Errorf("tolerance must be in (0, %g], got %g", maxTolerance, c.Tolerance))
	}
	if !c.UnitPolicy.Valid() {
		err = multierr.Append(err, fmt.Errorf("unknown unit policy %q", c.UnitPolicy))
	}
	if c.Workers < 1 {
		err = multierr.Append(err, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	if c.DaysPerYear < 1 {
		err = multierr.Append(err, fmt.Errorf("days_per_year must be >= 1, got %d", c.DaysPerYear))
	}
	switch c.OutputFormat {
	case OutputText, OutputJSON, OutputYAML:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown output format %q", c.OutputFormat))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return err
}

// AddRecent moves name to the front of the recent-scenarios list, keeping at most limit entries.
func (c *AppConfig) AddRecent(name string, limit int) {
	out := []string{name}
	for _, r := range c.RecentScenarios {
		if r != name {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	c.RecentScenarios = out
}
