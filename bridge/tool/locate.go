// Package tool finds, validates and runs the external retopology
// executable. It owns the subprocess boundary: path checks before every
// run, argv construction, bounded execution and captured output.
package tool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds the --help probe used by Probe.
const DefaultProbeTimeout = 5 * time.Second

// Locate validates the configured executable path. It is a read-only
// filesystem check and must run before every invocation, since the path
// is user-editable between runs.
func Locate(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrNoPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotExecutable, path)
	}
	if runtime.GOOS == "windows" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".exe", ".bat", ".cmd", ".com":
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotExecutable, path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s", ErrNotExecutable, path)
	}
	return nil
}

// Probe checks that the executable actually runs by invoking it with
// --help under a short timeout. It returns a human-readable pass
// message, or an error describing why the tool is unusable.
func Probe(ctx context.Context, path string, timeout time.Duration) (string, error) {
	if err := Locate(path); err != nil {
		return "", err
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--help")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	configureKill(cmd)
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrNonZeroExit, msg)
	}
	return fmt.Sprintf("executable at %s is working", path), nil
}
