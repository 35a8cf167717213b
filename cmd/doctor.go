package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/limbicnation/remesh/bridge/tool"
)

var doctorExe string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the configured retopology executable works",
	Long: `The doctor command validates the configured executable path (the file
exists and is executable) and then runs it with --help under a short timeout
to confirm it actually starts. It reports a single pass or fail message.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		exe := cfg.ExecutablePath
		if doctorExe != "" {
			exe = doctorExe
		}

		msg, err := tool.Probe(cmd.Context(), exe, cfg.ProbeTimeout())
		if err != nil {
			pterm.Println("❌ Executable test failed: " + err.Error())
			return err
		}
		pterm.Println("✅ " + msg)
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorExe, "exe", "", "test this path instead of the configured one")
	rootCmd.AddCommand(doctorCmd)
}
