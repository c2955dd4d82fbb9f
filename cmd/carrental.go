package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/tabular/dp"
	"github.com/samuelfneumann/tabular/environment/carrental"
	"github.com/samuelfneumann/tabular/report"
)

var (
	modified bool
	delta    string
)

// CarRentalCommand returns the command that solves the car rental
// problem with policy iteration
func CarRentalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carrental",
		Short: "Solve Jack's car rental problem with policy iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("modified") {
				conf.CarRental.Modified = modified
			}
			if cmd.Flags().Changed("delta") {
				conf.CarRental.Delta = delta
			}
			return runCarRental(cmd)
		},
	}
	cmd.Flags().BoolVar(&modified, "modified", false, "Add the free shuttle and the second parking lot")
	cmd.Flags().StringVar(&delta, "delta", "", "Evaluation delta mode: sweep_max or last_column")

	return cmd
}

func runCarRental(cmd *cobra.Command) error {
	problem, err := conf.CarRental.Problem()
	if err != nil {
		return err
	}
	solver, err := conf.CarRental.Solver()
	if err != nil {
		return err
	}
	solver.Logger = log

	m, err := carrental.NewModel(problem)
	if err != nil {
		return err
	}

	if conf.Output.Progress {
		writer := uilive.New()
		writer.Out = cmd.ErrOrStderr()
		writer.Start()
		defer writer.Stop()

		round := 0
		solver.OnIteration = func(s dp.Step) {
			fmt.Fprintf(writer, "policy %d: %d sweeps, %d actions changed\n",
				round, s.Evaluation.Iterations, s.Changed)
			round++
		}
	}

	result, err := dp.Iterate(m, solver)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Final policy (stable: %v, rounds: %d)\n", result.Stable,
		len(result.History))
	if err := report.PolicyGrid(out, result.Policy, true); err != nil {
		return err
	}

	charts := make([]components.Charter, 0, len(result.History)+1)
	for i, step := range result.History {
		charts = append(charts, report.HeatMap(fmt.Sprintf("π%d", i),
			"cars at location 2", "cars at location 1", step.Policy.Dense()))
	}
	charts = append(charts, report.HeatMap(fmt.Sprintf("v_π%d",
		len(result.History)-1), "cars at location 2", "cars at location 1",
		result.Values))

	return writePage("car_rental.html", "Car rental policy iteration",
		charts...)
}

// writePage renders charts into a page in the output directory
func writePage(name, title string, charts ...components.Charter) error {
	if err := os.MkdirAll(conf.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("writePage: %w", err)
	}

	path := filepath.Join(conf.Output.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writePage: %w", err)
	}
	defer f.Close()

	if err := report.Render(f, title, charts...); err != nil {
		return err
	}
	log.WithField("path", path).Info("wrote results")
	return nil
}
