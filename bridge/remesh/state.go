package remesh

import "fmt"

// Stage is the lifecycle position of one remesh operation.
type Stage int

const (
	StageIdle Stage = iota
	StageValidating
	StageExporting
	StageInvoking
	StageImporting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageValidating:
		return "validating"
	case StageExporting:
		return "exporting"
	case StageInvoking:
		return "invoking"
	case StageImporting:
		return "importing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// IsTerminal reports whether the stage ends the operation. There is no
// retry transition; a new operation starts over from idle.
func IsTerminal(s Stage) bool {
	return s == StageDone || s == StageFailed
}

// isAllowedTransition encodes the pipeline order. Failed is reachable
// from every non-idle, non-terminal stage.
func isAllowedTransition(from, to Stage) bool {
	if to == StageFailed {
		return from != StageIdle && !IsTerminal(from)
	}
	switch from {
	case StageIdle:
		return to == StageValidating
	case StageValidating:
		return to == StageExporting
	case StageExporting:
		return to == StageInvoking
	case StageInvoking:
		return to == StageImporting
	case StageImporting:
		return to == StageDone
	default:
		return false
	}
}

// machine tracks the stage of a single run and validates transitions.
// The caller provides synchronization; the pipeline never runs two
// operations at once.
type machine struct {
	stage Stage
}

func (m *machine) to(next Stage) error {
	if !isAllowedTransition(m.stage, next) {
		return fmt.Errorf("disallowed stage transition: %s -> %s", m.stage, next)
	}
	m.stage = next
	return nil
}
