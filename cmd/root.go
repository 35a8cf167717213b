// Package cmd provides the remesh command-line interface: running the
// retopology pipeline on mesh files, testing the configured executable
// and managing the persisted settings.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/limbicnation/remesh/bridge/config"
	"github.com/limbicnation/remesh/bridge/core"
)

var rootCmd = &cobra.Command{
	Use:           "remesh",
	Short:         "Remesh 3D models with an external retopology tool",
	Long:          `remesh exports a polygon mesh to an OBJ exchange file, runs a separately installed field-guided retopology executable on it, and imports the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the persisted settings and applies the log level.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	core.SetLevel(cfg.LogLevel)
	return cfg, nil
}
