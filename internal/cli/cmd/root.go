// Package cmd provides Cobra CLI commands for floatdock.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/floatdock/internal/cli"
	"github.com/bnema/floatdock/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "floatdock",
		Short: "Free-placement layout coordinator for desktop launcher panels",
		Long: `floatdock keeps a launcher's floating panels tidy.

Panels snap to screen edges and to each other, never stay on top of one
another after a drop, and follow the panel above them when it grows or shrinks.

Use 'floatdock preview' to play with a simulated desk in the terminal,
'floatdock simulate' to replay a scripted scenario, or explore the config
and bounds subcommands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
