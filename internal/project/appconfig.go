package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g. INDUSTRIMATH_WORKERS.
const EnvPrefix = "INDUSTRIMATH"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.industrimath/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".industrimath")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their default values. If the file does not exist, it returns
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	// Ensure RecentScenarios is never nil
	if config.RecentScenarios == nil {
		config.RecentScenarios = []string{}
	}
	return config, nil
}

// configFlags maps config keys to the command-line flags that override them.
var configFlags = map[string]string{
	"tolerance":     "tolerance",
	"unit_policy":   "unit-policy",
	"currency":      "currency",
	"days_per_year": "days-per-year",
	"output_format": "output",
	"workers":       "workers",
	"server_addr":   "addr",
	"log_level":     "log-level",
	"log_format":    "log-format",
}

// RegisterConfigFlags adds the overridable settings to fs. Defaults shown in
// help come from DefaultAppConfig; a flag only takes effect when set.
func RegisterConfigFlags(fs *pflag.FlagSet) {
	def := model.DefaultAppConfig()
	fs.Float64("tolerance", def.Tolerance, "comparison tolerance for vertices and ties")
	fs.String("unit-policy", string(def.UnitPolicy), "how the optimum becomes whole units (floor)")
	fs.String("currency", def.Currency, "currency label used in reports")
	fs.Int("days-per-year", def.DaysPerYear, "days per year for reorder calculations")
	fs.StringP("output", "o", def.OutputFormat, "output format: text, json or yaml")
	fs.Int("workers", def.Workers, "concurrent workers for batch runs")
	fs.String("addr", def.ServerAddr, "listen address of the HTTP API")
	fs.String("log-level", def.LogLevel, "log level: debug, info, warn or error")
	fs.String("log-format", def.LogFormat, "log format: console or json")
}

// LoadConfig resolves the effective configuration. Precedence, lowest first:
// built-in defaults, the JSON file at path, INDUSTRIMATH_* environment
// variables, then flags from fs that were explicitly set. fs may be nil.
func LoadConfig(path string, fs *pflag.FlagSet) (model.AppConfig, error) {
	cfg, err := LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("tolerance", cfg.Tolerance)
	v.SetDefault("unit_policy", string(cfg.UnitPolicy))
	v.SetDefault("currency", cfg.Currency)
	v.SetDefault("days_per_year", cfg.DaysPerYear)
	v.SetDefault("output_format", cfg.OutputFormat)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("server_addr", cfg.ServerAddr)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)

	if fs != nil {
		for key, name := range configFlags {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return model.AppConfig{}, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
