package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/shortcutmaze"
	"github.com/samuelfneumann/tabular/report"
	"github.com/samuelfneumann/tabular/utils/progressbar"
)

var (
	agents      []string
	runs        int
	steps       int
	parallelism int
	seed        uint64
)

// ShortcutCommand returns the command that compares Q-learning and the
// Dyna agents on the shortcut maze
func ShortcutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Compare Q-learning and Dyna agents on the shortcut maze",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("agents") {
				conf.Shortcut.Agents = agents
			}
			if flags.Changed("runs") {
				conf.Shortcut.Runs = runs
			}
			if flags.Changed("steps") {
				conf.Shortcut.Steps = steps
			}
			if flags.Changed("parallelism") {
				conf.Shortcut.Parallelism = parallelism
			}
			if flags.Changed("seed") {
				conf.Shortcut.Seed = seed
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt)
			defer stop()

			return runShortcut(ctx, cmd)
		},
	}
	cmd.Flags().StringSliceVar(&agents, "agents", nil, "Agents to compare")
	cmd.Flags().IntVar(&runs, "runs", 0, "Number of independent runs per agent")
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of time steps per run")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "Number of parallel runs")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the first run")

	return cmd
}

func newMaze() env.Environment {
	return shortcutmaze.New()
}

func runShortcut(ctx context.Context, cmd *cobra.Command) error {
	variants, err := conf.Shortcut.Variants()
	if err != nil {
		return err
	}

	var writer *uilive.Writer
	if conf.Output.Progress {
		writer = uilive.New()
		writer.Out = cmd.ErrOrStderr()
		writer.Start()
		defer writer.Stop()
	}

	rewards := make([]report.Series, 0, len(variants))
	episodes := make([]report.Series, 0, len(variants))
	for _, variant := range variants {
		e, err := conf.Shortcut.Experiment(variant)
		if err != nil {
			return err
		}
		e.Logger = log

		if writer != nil {
			bar := progressbar.NewManualProgressBar(fmt.Sprintf("%-9v",
				variant), 40, e.Runs, writer)
			bar.Display()
			e.OnRunDone = func(int) {
				bar.Increment()
				bar.Display()
			}
		}

		result, err := e.Run(ctx, newMaze)
		if err != nil {
			return err
		}

		rewards = append(rewards, report.Series{
			Name:   string(variant),
			Values: result.CumulativeReward,
		})
		episodes = append(episodes, report.Series{
			Name:   string(variant),
			Values: meanEpisodes(result.EpisodeLengths),
		})

		if n := len(result.CumulativeReward); n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9v cumulative reward %.2f\n",
				variant, result.CumulativeReward[n-1])
		}
	}

	line, err := report.Line("Cumulative reward", "time step", rewards...)
	if err != nil {
		return err
	}
	charts := []components.Charter{line}

	if episodeLine, err := report.Line("Steps per episode", "episode",
		truncate(episodes)...); err == nil {
		charts = append(charts, episodeLine)
	} else {
		log.WithError(err).Warn("episode lengths not plotted")
	}

	return writePage("shortcut_maze.html", "Shortcut maze", charts...)
}

// meanEpisodes returns the mean length of each episode over all runs,
// up to the number of episodes completed by every run
func meanEpisodes(lengths [][]float64) []float64 {
	if len(lengths) == 0 {
		return nil
	}

	n := len(lengths[0])
	for _, l := range lengths {
		if len(l) < n {
			n = len(l)
		}
	}

	mean := make([]float64, n)
	for _, l := range lengths {
		floats.Add(mean, l[:n])
	}
	floats.Scale(1/float64(len(lengths)), mean)
	return mean
}

// truncate shortens all series to the length of the shortest
func truncate(series []report.Series) []report.Series {
	if len(series) == 0 {
		return series
	}

	n := len(series[0].Values)
	for _, s := range series {
		if len(s.Values) < n {
			n = len(s.Values)
		}
	}

	short := make([]report.Series, len(series))
	for i, s := range series {
		short[i] = report.Series{Name: s.Name, Values: s.Values[:n]}
	}
	return short
}
