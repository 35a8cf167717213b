//go:build windows

package tool

import "os/exec"

// configureKill relies on the default context kill for the direct
// child; WaitDelay abandons the output pipes if a spawned helper
// inherited them and outlives it.
func configureKill(cmd *exec.Cmd) {
	cmd.WaitDelay = killGrace
}
