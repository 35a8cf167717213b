// Package remesh drives one retopology operation end to end: validate
// the configured executable, export the source mesh to an exchange
// file, run the external tool, and import the result as a new scene
// object. One operation is active at a time; there is no retry.
package remesh

import (
	"fmt"
	"strconv"

	"github.com/limbicnation/remesh/bridge/math"
)

// CountMode selects whether TargetCount means faces or vertices.
type CountMode string

const (
	CountFaces    CountMode = "faces"
	CountVertices CountMode = "vertices"
)

// Target count bounds accepted by the tool's UI surface.
const (
	MinTargetCount = 10
	MaxTargetCount = 1_000_000
)

// Request is the immutable parameter set for one run, captured from the
// caller at invocation time.
type Request struct {
	TargetCount     int
	Mode            CountMode
	Deterministic   bool
	PreserveSharp   bool
	AlignBoundaries bool
	CreaseAngle     float64 // degrees, 0 disables the flag
}

// DefaultRequest returns the stock parameters: 5000 target faces,
// sharp features and boundary alignment on, deterministic off, 30°
// crease threshold.
func DefaultRequest() Request {
	return Request{
		TargetCount:     5000,
		Mode:            CountFaces,
		PreserveSharp:   true,
		AlignBoundaries: true,
		CreaseAngle:     30.0,
	}
}

// Validate rejects parameter sets the tool would refuse.
func (r Request) Validate() error {
	switch r.Mode {
	case CountFaces, CountVertices:
	case "":
		return fmt.Errorf("count mode not set")
	default:
		return fmt.Errorf("unknown count mode %q", r.Mode)
	}
	if r.TargetCount < MinTargetCount || r.TargetCount > MaxTargetCount {
		return fmt.Errorf("target count %d outside [%d, %d]", r.TargetCount, MinTargetCount, MaxTargetCount)
	}
	if r.CreaseAngle < 0 || r.CreaseAngle > 180 {
		return fmt.Errorf("crease angle %g outside [0, 180] degrees", r.CreaseAngle)
	}
	return nil
}

// Clamped returns a copy with out-of-range numeric parameters pulled
// back into bounds, for callers that prefer correction over rejection.
func (r Request) Clamped() Request {
	r.TargetCount = math.Clamp(r.TargetCount, MinTargetCount, MaxTargetCount)
	r.CreaseAngle = math.Clamp(r.CreaseAngle, 0.0, 180.0)
	return r
}

// Args builds the tool's command line: parameter flags followed by the
// positional input and output files. The flag spellings are the
// external tool's stable CLI contract.
func (r Request) Args(input, output string) []string {
	args := make([]string, 0, 10)
	if r.Mode == CountVertices {
		args = append(args, "-v", strconv.Itoa(r.TargetCount))
	} else {
		args = append(args, "-f", strconv.Itoa(r.TargetCount))
	}
	if r.PreserveSharp {
		args = append(args, "-c")
	}
	if r.AlignBoundaries {
		args = append(args, "-b")
	}
	if r.Deterministic {
		args = append(args, "-d")
	}
	if r.CreaseAngle > 0 {
		args = append(args, "-a", strconv.FormatFloat(r.CreaseAngle, 'f', -1, 64))
	}
	return append(args, input, output)
}
