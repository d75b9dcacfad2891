package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/project"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(a.configInitCommand(), a.configShowCommand())
	return cmd
}

func (a *app) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			}
			if err := project.SaveAppConfig(a.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(a.out, "Wrote %s\n", a.configPath)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (a *app) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Shows the configuration after defaults, the config file, INDUSTRIMATH_*
environment variables and flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := a.cfg
			return a.render(cfg, func(w io.Writer) error {
				return printConfig(w, a.configPath, cfg)
			})
		},
	}
}

func printConfig(w io.Writer, path string, cfg model.AppConfig) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "config file\t%s\n", path)
	fmt.Fprintf(tw, "tolerance\t%g\n", cfg.Tolerance)
	fmt.Fprintf(tw, "unit_policy\t%s\n", cfg.UnitPolicy)
	fmt.Fprintf(tw, "currency\t%s\n", cfg.Currency)
	fmt.Fprintf(tw, "days_per_year\t%d\n", cfg.DaysPerYear)
	fmt.Fprintf(tw, "output_format\t%s\n", cfg.OutputFormat)
	fmt.Fprintf(tw, "workers\t%d\n", cfg.Workers)
	fmt.Fprintf(tw, "server_addr\t%s\n", cfg.ServerAddr)
	fmt.Fprintf(tw, "log_level\t%s\n", cfg.LogLevel)
	fmt.Fprintf(tw, "log_format\t%s\n", cfg.LogFormat)
	fmt.Fprintf(tw, "default resources\t%d\n", len(cfg.DefaultProduction.Resources))
	fmt.Fprintf(tw, "recent scenarios\t%v\n", cfg.RecentScenarios)
	return tw.Flush()
}

func (a *app) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the configuration and all scenarios",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "export FILE",
			Short: "Write the configuration file and scenario store to one JSON backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				cfg, err := project.LoadAppConfig(a.configPath)
				if err != nil {
					return err
				}
				store, err := a.loadStore()
				if err != nil {
					return err
				}
				if err := project.ExportAllData(args[0], cfg, store); err != nil {
					return err
				}
				a.log.Info("Exported backup", "path", args[0], "scenarios", len(store.Scenarios))
				_, err = fmt.Fprintf(a.out, "Exported %d scenarios to %s\n", len(store.Scenarios), args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Replace the configuration file and scenario store from a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				backup, err := project.ImportAllData(args[0])
				if err != nil {
					return err
				}
				if err := backup.Config.Validate(); err != nil {
					return fmt.Errorf("backup holds an invalid configuration: %w", err)
				}
				if err := project.SaveAppConfig(a.configPath, backup.Config); err != nil {
					return err
				}
				if err := project.SaveScenarios(a.scenarioPath, backup.Scenarios); err != nil {
					return err
				}
				a.log.Info("Imported backup", "path", args[0], "version", backup.Version, "scenarios", len(backup.Scenarios.Scenarios))
				_, err = fmt.Fprintf(a.out, "Imported %d scenarios from %s\n", len(backup.Scenarios.Scenarios), args[0])
				return err
			},
		},
	)
	return cmd
}
