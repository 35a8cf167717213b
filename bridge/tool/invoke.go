package tool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/limbicnation/remesh/bridge/core"
)

// DefaultRunTimeout bounds one retopology run. Dense meshes can take a
// while, so this is generous; it exists to catch a hung tool, not a
// slow one.
const DefaultRunTimeout = 5 * time.Minute

// killGrace is how long Wait keeps reading the tool's output pipes
// after the kill before abandoning them.
const killGrace = time.Second

// Result captures one finished (or killed) tool invocation. It is
// consumed immediately to decide success or failure and not persisted.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Invoker runs the external tool as a child process with a bounded
// wait. The zero value uses DefaultRunTimeout.
type Invoker struct {
	Timeout time.Duration
}

// Run spawns path with args and waits for it to finish, killing it if
// it outlives the timeout. On failure the returned Result still carries
// whatever output was captured. Errors wrap ErrLaunch, ErrTimeout or
// ErrNonZeroExit; the tool's stderr is surfaced verbatim. No retry is
// attempted: a partially-written output file must never be imported.
func (iv *Invoker) Run(ctx context.Context, path string, args []string) (*Result, error) {
	timeout := iv.Timeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	core.LogDebug("executing: %s %s", path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	configureKill(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	waitErr := cmd.Wait()

	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		return res, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case ctx.Err() == context.Canceled:
		// Caller-initiated cancellation; the child has been killed.
		return res, ctx.Err()
	case waitErr != nil:
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = waitErr.Error()
		}
		return res, fmt.Errorf("%w (exit %d): %s", ErrNonZeroExit, res.ExitCode, msg)
	}
	core.LogDebug("tool finished in %s", res.Duration)
	return res, nil
}
