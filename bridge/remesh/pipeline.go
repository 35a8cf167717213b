package remesh

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/limbicnation/remesh/bridge/core"
	"github.com/limbicnation/remesh/bridge/obj"
	"github.com/limbicnation/remesh/bridge/scene"
	"github.com/limbicnation/remesh/bridge/tool"
)

// RemeshedSuffix is appended to the source object's name for the
// imported result.
const RemeshedSuffix = "_remeshed"

// Result describes one finished run. On failure it still carries the
// stage log context: the process result (if the tool ran) and the
// exchange paths kept for diagnostics.
type Result struct {
	ObjectName string
	Object     *scene.Object
	Process    *tool.Result
	Exchange   *Exchange
	Elapsed    time.Duration
}

// Pipeline runs remesh operations against one configured executable.
// A single operation is active at a time; triggering a second while one
// is in flight returns ErrBusy.
type Pipeline struct {
	ExecutablePath string
	Invoker        *tool.Invoker
	// TempDir overrides the exchange base directory; empty means the
	// system temp dir.
	TempDir string
	// KeepFailedRuns bounds how many failed-run exchange dirs are
	// retained for diagnostics; <= 0 keeps all of them.
	KeepFailedRuns int

	mu    sync.Mutex
	busy  bool
	stage Stage
}

func NewPipeline(executablePath string) *Pipeline {
	return &Pipeline{
		ExecutablePath: executablePath,
		Invoker:        &tool.Invoker{},
	}
}

// Stage reports the stage of the operation currently in flight, or the
// terminal stage of the last one.
func (p *Pipeline) Stage() Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

func (p *Pipeline) setStage(m *machine, next Stage) error {
	if err := m.to(next); err != nil {
		return err
	}
	p.mu.Lock()
	p.stage = next
	p.mu.Unlock()
	core.LogDebug("stage: %s", next)
	return nil
}

// Run executes one remesh operation: validate the executable and
// parameters, export src's mesh, invoke the tool, import the output and
// insert it into sc named after the source with RemeshedSuffix, carrying
// the source transform. On any failure nothing is added to the scene and
// exactly one error, naming the failing stage, is returned.
func (p *Pipeline) Run(ctx context.Context, sc *scene.Scene, src *scene.Object, req Request) (*Result, error) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.busy = true
	p.stage = StageIdle
	if p.Invoker == nil {
		p.Invoker = &tool.Invoker{}
	}
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	m := &machine{stage: StageIdle}
	res := &Result{}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	fail := func(err error) (*Result, error) {
		stage := m.stage
		_ = p.setStage(m, StageFailed)
		if res.Exchange != nil {
			core.LogWarn("run failed while %s, exchange files kept at %s", stage, res.Exchange.Dir)
			if err := PruneFailed(p.TempDir, p.KeepFailedRuns); err != nil {
				core.LogWarn("retention pruning: %v", err)
			}
		}
		return res, failAt(stage, err)
	}

	// Validating
	if err := p.setStage(m, StageValidating); err != nil {
		return nil, err
	}
	if src == nil || src.Mesh == nil {
		return fail(errors.New("no source object selected"))
	}
	if err := tool.Locate(p.ExecutablePath); err != nil {
		return fail(err)
	}
	if err := req.Validate(); err != nil {
		return fail(err)
	}

	// Exporting
	if err := p.setStage(m, StageExporting); err != nil {
		return nil, err
	}
	ex, err := NewExchange(p.TempDir)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrExport, err))
	}
	res.Exchange = ex
	tri := src.Mesh.Triangulate()
	if err := obj.EncodeFile(tri, ex.Input); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrExport, err))
	}
	core.LogInfo("exported %q: %d vertices, %d triangles", src.Name, tri.VertexCount(), tri.FaceCount())

	// Invoking
	if err := p.setStage(m, StageInvoking); err != nil {
		return nil, err
	}
	proc, err := p.Invoker.Run(ctx, p.ExecutablePath, req.Args(ex.Input, ex.Output))
	res.Process = proc
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Discard, never import a partial output.
			if cerr := ex.Cleanup(); cerr != nil {
				core.LogWarn("cleanup after cancel: %v", cerr)
			}
			res.Exchange = nil
		}
		return fail(err)
	}

	// Importing
	if err := p.setStage(m, StageImporting); err != nil {
		return nil, err
	}
	if _, err := os.Stat(ex.Output); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrNoOutput, err))
	}
	imported, err := obj.DecodeFile(ex.Output, src.Name+RemeshedSuffix)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrImport, err))
	}

	// The new object only reaches the scene once fully constructed.
	out := &scene.Object{
		Name:      imported.Name,
		Transform: src.Transform.Clone(),
		Mesh:      imported,
	}
	res.ObjectName = sc.Add(out)
	res.Object = out

	if err := p.setStage(m, StageDone); err != nil {
		return nil, err
	}
	if err := ex.Cleanup(); err != nil {
		core.LogWarn("cleanup: %v", err)
	}
	res.Exchange = nil
	core.LogInfo("remeshed %q -> %q: %d vertices, %d faces in %s",
		src.Name, res.ObjectName, imported.VertexCount(), imported.FaceCount(), time.Since(start))
	return res, nil
}
