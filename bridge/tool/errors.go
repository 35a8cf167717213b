package tool

import (
	"errors"
)

var (
	// ErrNoPath means no executable path has been configured.
	ErrNoPath = errors.New("no executable path configured")
	// ErrNotFound means the configured path does not exist.
	ErrNotFound = errors.New("executable not found")
	// ErrNotExecutable means the path exists but cannot be run.
	ErrNotExecutable = errors.New("file is not executable")
	// ErrLaunch means the process could not be spawned. Distinct from
	// ErrNotFound: the file can change between the pre-check and spawn.
	ErrLaunch = errors.New("failed to launch process")
	// ErrTimeout means the process exceeded its wall-clock budget and
	// was terminated.
	ErrTimeout = errors.New("process timed out")
	// ErrNonZeroExit means the tool itself reported failure.
	ErrNonZeroExit = errors.New("process exited with an error")
)
