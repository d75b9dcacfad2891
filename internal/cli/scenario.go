package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/project"
)

func (a *app) scenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scenario",
		Aliases: []string{"scenarios"},
		Short:   "Manage saved production scenarios",
	}
	cmd.AddCommand(
		a.scenarioListCommand(),
		a.scenarioSaveCommand(),
		a.scenarioShowCommand(),
		a.scenarioSetCommand(),
		a.scenarioUndoCommand(),
		a.scenarioRedoCommand(),
		a.scenarioDeleteCommand(),
	)
	return cmd
}

func (a *app) scenarioListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved scenarios",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			return a.render(store, func(w io.Writer) error {
				return printScenarioList(w, store)
			})
		},
	}
}

func (a *app) scenarioSaveCommand() *cobra.Command {
	var (
		pf          productionFlags
		description string
		inventory   string
		queue       string
		reliability string
	)
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a production input as a named scenario",
		Long: `Saves the production input built from --input, --scenario or the
configured default, with any flag overrides applied. Saving over an
existing name records the previous input in its undo history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			in, _, err := a.resolveProduction(cmd, &pf)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}

			store, err := a.loadStore()
			if err != nil {
				return err
			}
			s := model.NewScenario(name, description, in)
			if existing := store.FindByName(name); existing != nil {
				s = *existing
				s.Update(in, "save "+name)
				if cmd.Flags().Changed("description") {
					s.Description = description
				}
			}
			if err := attachCalculators(&s, inventory, queue, reliability); err != nil {
				return err
			}
			store.Put(s)

			if err := project.SaveScenarios(a.scenarioPath, store); err != nil {
				return err
			}
			a.rememberScenario(name)
			a.log.Info("Saved scenario", "name", name, "id", s.ID, "path", a.scenarioPath)
			_, err = fmt.Fprintf(a.out, "Saved scenario %q (%s)\n", name, s.ID)
			return err
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "scenario description")
	cmd.Flags().StringVar(&inventory, "inventory", "", "attach inventory parameters from a file")
	cmd.Flags().StringVar(&queue, "queue", "", "attach queue parameters from a file")
	cmd.Flags().StringVar(&reliability, "reliability", "", "attach reliability parameters from a file")
	return cmd
}

// attachCalculators reads the optional calculator inputs into s.
func attachCalculators(s *model.Scenario, inventory, queue, reliability string) error {
	if inventory != "" {
		in := model.DefaultInventoryInput()
		if err := readInputFile(inventory, &in); err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		s.Inventory = &in
	}
	if queue != "" {
		in := model.DefaultQueueInput()
		if err := readInputFile(queue, &in); err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		s.Queue = &in
	}
	if reliability != "" {
		var in model.ReliabilityInput
		if err := readInputFile(reliability, &in); err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		s.Reliability = &in
	}
	return nil
}

func (a *app) scenarioShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME|ID",
		Short: "Show a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			s := store.Find(args[0])
			if s == nil {
				return fmt.Errorf("scenario %q not found", args[0])
			}
			return a.render(s, func(w io.Writer) error {
				return printScenario(w, *s)
			})
		},
	}
}

func (a *app) scenarioSetCommand() *cobra.Command {
	var (
		capacities []string
		profitX    float64
		profitY    float64
	)
	cmd := &cobra.Command{
		Use:   "set NAME|ID",
		Short: "Change capacities or profits of a saved scenario",
		Example: `  industrimath scenario set workshop --capacity "Teak wood=150"
  industrimath scenario set workshop --profit-y 320000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("capacity") && !fs.Changed("profit-x") && !fs.Changed("profit-y") {
				return errors.New("nothing to change: use --capacity, --profit-x or --profit-y")
			}

			return a.editScenario(args[0], func(s *model.Scenario) error {
				in := s.Production.Clone()
				var labels []string
				for _, spec := range capacities {
					name, v, err := parseNamedValue(spec)
					if err != nil {
						return err
					}
					idx := resourceIndex(in, name)
					if idx < 0 {
						return fmt.Errorf("scenario %q has no resource %q", s.Name, name)
					}
					in.Resources[idx].Capacity = v
					labels = append(labels, fmt.Sprintf("capacity %s=%g", name, v))
				}
				if fs.Changed("profit-x") {
					in.Objective.CX = profitX
					labels = append(labels, fmt.Sprintf("profit x=%g", profitX))
				}
				if fs.Changed("profit-y") {
					in.Objective.CY = profitY
					labels = append(labels, fmt.Sprintf("profit y=%g", profitY))
				}
				if err := in.Validate(); err != nil {
					return err
				}
				s.Update(in, strings.Join(labels, ", "))
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&capacities, "capacity", nil, "new capacity as RESOURCE=VALUE (repeatable)")
	cmd.Flags().Float64Var(&profitX, "profit-x", 0, "new profit per unit of the first product")
	cmd.Flags().Float64Var(&profitY, "profit-y", 0, "new profit per unit of the second product")
	return cmd
}

func resourceIndex(in model.ProductionInput, name string) int {
	for i, r := range in.Resources {
		if strings.EqualFold(r.Name, name) {
			return i
		}
	}
	return -1
}

func (a *app) scenarioUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo NAME|ID",
		Short: "Revert the last change to a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.editScenario(args[0], func(s *model.Scenario) error {
				if !s.Undo() {
					return fmt.Errorf("scenario %q has nothing to undo", s.Name)
				}
				return nil
			})
		},
	}
}

func (a *app) scenarioRedoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "redo NAME|ID",
		Short: "Re-apply a change undone on a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.editScenario(args[0], func(s *model.Scenario) error {
				if !s.Redo() {
					return fmt.Errorf("scenario %q has nothing to redo", s.Name)
				}
				return nil
			})
		},
	}
}

// editScenario loads the store, applies edit to the scenario named key and
// saves the store again.
func (a *app) editScenario(key string, edit func(*model.Scenario) error) error {
	store, err := a.loadStore()
	if err != nil {
		return err
	}
	s := store.Find(key)
	if s == nil {
		return fmt.Errorf("scenario %q not found", key)
	}
	if err := edit(s); err != nil {
		return err
	}
	if err := project.SaveScenarios(a.scenarioPath, store); err != nil {
		return err
	}
	a.log.V(1).Info("Updated scenario", "name", s.Name, "undo", len(s.History.UndoStack), "redo", len(s.History.RedoStack))
	return a.render(s, func(w io.Writer) error {
		return printScenario(w, *s)
	})
}

func (a *app) scenarioDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME|ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved scenario",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("scenario %q not found", args[0])
			}
			if err := project.SaveScenarios(a.scenarioPath, store); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "Deleted scenario %q\n", args[0])
			return err
		},
	}
}
