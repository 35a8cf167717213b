package remesh

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy means a run was triggered while another is in flight.
	ErrBusy = errors.New("a remesh operation is already running")
	// ErrExport means the source mesh could not be written out.
	ErrExport = errors.New("mesh export failed")
	// ErrImport means the tool's output could not be read back.
	ErrImport = errors.New("mesh import failed")
	// ErrNoOutput means the tool claimed success but wrote nothing.
	ErrNoOutput = errors.New("tool produced no output file")
)

// StageError names the pipeline stage an error originated from. Exactly
// one reaches the caller per failed operation.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func failAt(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
