package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
)

var version = "dev"

// app carries the state shared by every subcommand
type app struct {
	settingsPath string
	verbose      bool

	settings config.Settings
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{settings: config.DefaultSettings()}

	root := &cobra.Command{
		Use:   "bayesnet",
		Short: "Exact inference over discrete Bayesian networks",
		Long: `bayesnet answers conditional probability queries such as P(B=T|J=T,M=T)
over networks stored as XMLBIF or YAML, and reports how many additions and
multiplications each algorithm needed:

  1  brute-force enumeration of the joint distribution
  2  variable elimination, hidden variables in name order
  3  variable elimination, smallest CPT first`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.settingsPath != "" {
				s, err := config.LoadSettings(a.settingsPath)
				if err != nil {
					return err
				}
				a.settings = s
			}

			cfg := zap.NewProductionConfig()
			level, err := zapcore.ParseLevel(a.settings.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			if a.verbose {
				level = zapcore.DebugLevel
			}
			cfg.Level = zap.NewAtomicLevelAt(level)
			a.logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.settingsPath, "config", "", "YAML settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCmd(a),
		newQueryCmd(a),
		newInspectCmd(a),
		newRunsCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "bayesnet", version)
			},
		},
	)
	return root
}
