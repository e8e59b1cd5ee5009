package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/travel-manager/internal/cli"
	"github.com/CodexForgeBR/travel-manager/internal/config"
	"github.com/CodexForgeBR/travel-manager/internal/exitcode"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
	sighandler "github.com/CodexForgeBR/travel-manager/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "travel-manager",
		Short:   "Multi-worker trip planning session with optional crypto payments",
		Long:    "Travel Manager coordinates a team of travel workers, tracking budget, energy, satisfaction and trip completeness until the trip is planned.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFlags(cmd, cfg); err != nil {
				return err
			}
			return runSession(cmd, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(rootCmd, cfg)
	cli.SetCustomHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
}

func runSession(cmd *cobra.Command, cfg *config.Config) error {
	finalCfg, err := config.LoadWithPrecedence(config.GlobalPath(), config.ProjectPath, cfg.ConfigFile, cli.Overrides(cmd, cfg))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Merge CLI-only flags (not in config files)
	finalCfg.ConfigFile = cfg.ConfigFile
	finalCfg.Resume = cfg.Resume
	finalCfg.Clean = cfg.Clean
	finalCfg.Status = cfg.Status

	// Config files may have changed values the flags already validated.
	if err := cli.Validate(finalCfg); err != nil {
		return err
	}
	cfg = finalCfg

	logging.SetVerbose(cfg.Verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupt received, stopping after the current action (press Ctrl-C again to quit now)...")
	}, func() {
		os.Exit(exitcode.Interrupted)
	})

	os.Exit(run(ctx, cfg, os.Stdin, os.Stdout))
	return nil
}
