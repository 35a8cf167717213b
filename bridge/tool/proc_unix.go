//go:build !windows

package tool

import (
	"os/exec"
	"syscall"
)

// configureKill makes cancellation take down the tool's whole process
// group, not just the direct child. A forked helper that inherits the
// output pipes would otherwise keep Wait blocked long past the
// deadline. WaitDelay abandons the pipes if anything survives the kill.
func configureKill(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = killGrace
}
