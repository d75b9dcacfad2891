// Package cli is the industrimath command tree.
package cli

import (
	"context"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/logging"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/project"
)

// recentLimit caps the recent-scenarios list kept in the config file.
const recentLimit = 10

// app holds the state shared by every command once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath   string
	scenarioPath string

	cfg model.AppConfig
	log logr.Logger
	opt *engine.Optimizer
}

// NewRootCommand builds the command tree. Results go to out; logs and errors
// go to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, log: logr.Discard()}

	root := &cobra.Command{
		Use:   "industrimath",
		Short: "Mathematical models for industrial decisions",
		Long: `industrimath solves small operations-research models used in industry:
the two-product production mix (linear programming by vertex enumeration),
economic order quantity, M/M/1 queues and series-line reliability.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", project.DefaultConfigPath(), "config file")
	pf.StringVar(&a.scenarioPath, "scenarios", project.DefaultScenarioPath(), "scenario store (.json, .yaml or .yml)")
	project.RegisterConfigFlags(pf)

	root.AddCommand(
		a.productionCommand(),
		a.inventoryCommand(),
		a.queueCommand(),
		a.reliabilityCommand(),
		a.compareCommand(),
		a.batchCommand(),
		a.scenarioCommand(),
		a.serveCommand(),
		a.configCommand(),
		a.backupCommand(),
	)
	return root
}

// setup resolves the configuration and puts the logger into the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := project.LoadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(a.errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.opt = engine.New(engine.OptionsFromConfig(cfg))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.IntoContext(ctx, logger))
	logger.V(1).Info("Loaded configuration", "path", a.configPath, "tolerance", cfg.Tolerance, "workers", cfg.Workers)
	return nil
}

// Execute runs the command tree with args until ctx is done.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadStore reads the scenario store.
func (a *app) loadStore() (model.ScenarioStore, error) {
	return project.LoadScenarios(a.scenarioPath)
}

// rememberScenario records name as recently used in the config file. Only
// the file's own values are rewritten, never flag or environment overrides.
func (a *app) rememberScenario(name string) {
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		a.log.V(1).Info("Skipping recent scenarios update", "error", err.Error())
		return
	}
	cfg.AddRecent(name, recentLimit)
	if err := project.SaveAppConfig(a.configPath, cfg); err != nil {
		a.log.Error(err, "Failed to update recent scenarios", "path", a.configPath)
	}
}
