package cmd

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/limbicnation/remesh/bridge/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := config.Path()
		if err != nil {
			return err
		}

		exe := cfg.ExecutablePath
		if exe == "" {
			exe = "(not set)"
		}
		rows := pterm.TableData{
			{"setting", "value"},
			{"executable_path", exe},
			{"run_timeout_seconds", strconv.Itoa(cfg.RunTimeoutSeconds)},
			{"probe_timeout_seconds", strconv.Itoa(cfg.ProbeTimeoutSeconds)},
			{"keep_failed_runs", strconv.Itoa(cfg.KeepFailedRuns)},
			{"log_level", cfg.LogLevel},
			{"defaults.target_count", strconv.Itoa(cfg.Defaults.TargetCount)},
			{"defaults.count_mode", cfg.Defaults.CountMode},
			{"defaults.preserve_sharp", strconv.FormatBool(cfg.Defaults.PreserveSharp)},
			{"defaults.align_boundaries", strconv.FormatBool(cfg.Defaults.AlignBoundaries)},
			{"defaults.deterministic", strconv.FormatBool(cfg.Defaults.Deterministic)},
			{"defaults.crease_angle", strconv.FormatFloat(cfg.Defaults.CreaseAngle, 'f', -1, 64)},
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
		pterm.Println()
		pterm.Println("Config file: " + p)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and persist it",
	Long: `Set a configuration key. Keys match the names shown by "remesh config show",
for example:

  remesh config set executable_path "/opt/instant-meshes/Instant Meshes"
  remesh config set defaults.target_count 8000
  remesh config set keep_failed_runs 10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applySetting(&cfg, args[0], args[1]); err != nil {
			pterm.Println("❌ " + err.Error())
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		pterm.Println("✅ " + args[0] + " = " + args[1])
		return nil
	},
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "executable_path":
		cfg.ExecutablePath = value
	case "log_level":
		cfg.LogLevel = value
	case "run_timeout_seconds":
		return setInt(&cfg.RunTimeoutSeconds, key, value)
	case "probe_timeout_seconds":
		return setInt(&cfg.ProbeTimeoutSeconds, key, value)
	case "keep_failed_runs":
		return setInt(&cfg.KeepFailedRuns, key, value)
	case "defaults.target_count":
		return setInt(&cfg.Defaults.TargetCount, key, value)
	case "defaults.count_mode":
		if value != "faces" && value != "vertices" {
			return fmt.Errorf("%s must be \"faces\" or \"vertices\"", key)
		}
		cfg.Defaults.CountMode = value
	case "defaults.preserve_sharp":
		return setBool(&cfg.Defaults.PreserveSharp, key, value)
	case "defaults.align_boundaries":
		return setBool(&cfg.Defaults.AlignBoundaries, key, value)
	case "defaults.deterministic":
		return setBool(&cfg.Defaults.Deterministic, key, value)
	case "defaults.crease_angle":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", key, value)
		}
		cfg.Defaults.CreaseAngle = f
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", key, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	*dst = b
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
