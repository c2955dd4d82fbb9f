// Package cmd implements the command line interface to the car rental
// and shortcut maze experiments
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/utils/logger"
)

var (
	configPath string
	logLevel   string
	outputDir  string
	noProgress bool

	conf *config.Config
	log  *logrus.Logger
)

// RootCommand returns the command that all experiments are run under
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tabular",
		Short:         "Run tabular dynamic programming and Dyna experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		CarRentalCommand(),
		ShortcutCommand(),
	)

	return cmd
}

// Execute runs the root command and closes the log file, if any, once
// the command returns
func Execute() error {
	err := RootCommand().Execute()
	if log != nil {
		if closeErr := logger.Close(log); err == nil {
			err = closeErr
		}
	}
	return err
}

// AddFlags adds the flags shared by all commands
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides the config file")
	cmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory to write results to, overrides the config file")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Do not display progress")
}

// setup loads the configuration, applies flags that were set and
// creates the logger
func setup(cmd *cobra.Command) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if flags.Changed("output-dir") {
		c.Output.Dir = outputDir
	}
	if noProgress {
		c.Output.Progress = false
	}

	l, err := logger.New(c.Logging.Level, c.Logging.Format,
		c.Logging.OutputPath)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	conf, log = c, l
	log.WithField("config", configPath).Debug("configuration loaded")
	return nil
}
