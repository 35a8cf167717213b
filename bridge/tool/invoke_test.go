package tool

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInvokerSuccess(t *testing.T) {
	path := writeScript(t, t.TempDir(), "tool", `echo "done"`+"\n")
	iv := &Invoker{Timeout: 5 * time.Second}

	res, err := iv.Run(context.Background(), path, []string{"-f", "100"})
	if err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(res.Stdout, "done") {
		t.Fatalf("Stdout = %q, want it to contain \"done\"", res.Stdout)
	}
	if res.Duration <= 0 {
		t.Fatal("Duration not recorded")
	}
}

func TestInvokerNonZeroExit(t *testing.T) {
	path := writeScript(t, t.TempDir(), "tool", `echo "mesh rejected" >&2; exit 7`+"\n")
	iv := &Invoker{Timeout: 5 * time.Second}

	res, err := iv.Run(context.Background(), path, nil)
	if !errors.Is(err, ErrNonZeroExit) {
		t.Fatalf("Run = %v, want ErrNonZeroExit", err)
	}
	if res == nil || res.ExitCode != 7 {
		t.Fatalf("ExitCode = %+v, want 7", res)
	}
	if !strings.Contains(err.Error(), "mesh rejected") {
		t.Fatalf("error %q does not surface stderr verbatim", err)
	}
}

func TestInvokerTimeoutKillsChild(t *testing.T) {
	path := writeScript(t, t.TempDir(), "tool", "sleep 30\n")
	iv := &Invoker{Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := iv.Run(context.Background(), path, nil)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Run = %v, want ErrTimeout", err)
	}
	if elapsed > 10*time.Second {
		t.Fatalf("Run returned after %s, the child was not terminated", elapsed)
	}
}

func TestInvokerTimeoutKillsForkedDescendants(t *testing.T) {
	// A background helper inherits the output pipes; Run must still
	// return at the deadline instead of waiting for it to exit.
	path := writeScript(t, t.TempDir(), "tool", "sleep 30 &\nsleep 30\n")
	iv := &Invoker{Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := iv.Run(context.Background(), path, nil)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Run = %v, want ErrTimeout", err)
	}
	if elapsed > 10*time.Second {
		t.Fatalf("Run returned after %s, forked descendants kept it blocked", elapsed)
	}
}

func TestInvokerLaunchError(t *testing.T) {
	iv := &Invoker{Timeout: time.Second}
	_, err := iv.Run(context.Background(), filepath.Join(t.TempDir(), "vanished"), nil)
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("Run = %v, want ErrLaunch", err)
	}
}

func TestInvokerCancellation(t *testing.T) {
	path := writeScript(t, t.TempDir(), "tool", "sleep 30\n")
	iv := &Invoker{Timeout: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := iv.Run(ctx, path, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("Run returned after %s, cancellation did not kill the child", elapsed)
	}
}
