// Package config loads and stores the bridge settings in the XDG
// config dir as TOML. The executable path lives here and nowhere else;
// it is handed explicitly to the validator and invoker rather than read
// from ambient globals.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/limbicnation/remesh/bridge/remesh"
)

// Config holds every persisted setting.
type Config struct {
	ExecutablePath string `toml:"executable_path"`
	// RunTimeoutSeconds bounds one tool invocation; 0 means the
	// built-in default.
	RunTimeoutSeconds int `toml:"run_timeout_seconds"`
	// ProbeTimeoutSeconds bounds the --help executable test.
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`
	// KeepFailedRuns bounds retained failed-run exchange dirs;
	// 0 keeps all of them.
	KeepFailedRuns int    `toml:"keep_failed_runs"`
	LogLevel       string `toml:"log_level"`

	Defaults Defaults `toml:"defaults"`
}

// Defaults are the remesh parameters used when the caller does not
// override them.
type Defaults struct {
	TargetCount     int     `toml:"target_count"`
	CountMode       string  `toml:"count_mode"`
	PreserveSharp   bool    `toml:"preserve_sharp"`
	AlignBoundaries bool    `toml:"align_boundaries"`
	Deterministic   bool    `toml:"deterministic"`
	CreaseAngle     float64 `toml:"crease_angle"`
}

// New returns the stock configuration.
func New() Config {
	req := remesh.DefaultRequest()
	return Config{
		RunTimeoutSeconds:   300,
		ProbeTimeoutSeconds: 5,
		KeepFailedRuns:      5,
		LogLevel:            "info",
		Defaults: Defaults{
			TargetCount:     req.TargetCount,
			CountMode:       string(req.Mode),
			PreserveSharp:   req.PreserveSharp,
			AlignBoundaries: req.AlignBoundaries,
			Deterministic:   req.Deterministic,
			CreaseAngle:     req.CreaseAngle,
		},
	}
}

// Request converts the persisted defaults into a run request.
func (c Config) Request() remesh.Request {
	return remesh.Request{
		TargetCount:     c.Defaults.TargetCount,
		Mode:            remesh.CountMode(c.Defaults.CountMode),
		PreserveSharp:   c.Defaults.PreserveSharp,
		AlignBoundaries: c.Defaults.AlignBoundaries,
		Deterministic:   c.Defaults.Deterministic,
		CreaseAngle:     c.Defaults.CreaseAngle,
	}.Clamped()
}

// RunTimeout returns the invocation timeout as a duration.
func (c Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}

// ProbeTimeout returns the executable-test timeout as a duration.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// Dir returns the config directory, creating it with private
// permissions when missing. XDG_CONFIG_HOME is honored with a fallback
// to ~/.config.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "remesh")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration; a missing file returns defaults.
func Load() (Config, error) {
	c := New()
	p, err := Path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes the configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o600)
}
