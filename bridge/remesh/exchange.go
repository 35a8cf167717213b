package remesh

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/limbicnation/remesh/bridge/core"
)

// exchangePrefix names per-run scratch directories under the temp dir.
const exchangePrefix = "remesh-"

// Exchange is the pair of scratch files one run uses to hand geometry
// to the external tool and back. Each run gets a fresh uuid-named
// directory, so concurrent or sequential runs never collide.
type Exchange struct {
	Dir    string
	Input  string
	Output string
}

// NewExchange allocates a unique exchange directory under baseDir
// (os.TempDir when empty).
func NewExchange(baseDir string) (*Exchange, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir := filepath.Join(baseDir, exchangePrefix+uuid.New().String())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create exchange dir: %w", err)
	}
	return &Exchange{
		Dir:    dir,
		Input:  filepath.Join(dir, "input.obj"),
		Output: filepath.Join(dir, "output.obj"),
	}, nil
}

// Cleanup removes the exchange directory and both files. Called after a
// successful import, or on cancellation; failed runs keep their files
// for diagnostics.
func (e *Exchange) Cleanup() error {
	return os.RemoveAll(e.Dir)
}

// PruneFailed enforces the failed-run retention policy: keep at most
// `keep` leftover exchange directories under baseDir, removing the
// oldest first. keep <= 0 disables pruning entirely.
func PruneFailed(baseDir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return err
	}

	type leftover struct {
		path string
		mod  int64
	}
	var dirs []leftover
	for _, ent := range entries {
		if !ent.IsDir() || !strings.HasPrefix(ent.Name(), exchangePrefix) {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, leftover{
			path: filepath.Join(baseDir, ent.Name()),
			mod:  info.ModTime().UnixNano(),
		})
	}
	if len(dirs) <= keep {
		return nil
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mod < dirs[j].mod })
	for _, d := range dirs[:len(dirs)-keep] {
		if err := os.RemoveAll(d.path); err != nil {
			core.LogWarn("prune %s: %v", d.path, err)
			continue
		}
		core.LogDebug("pruned old exchange dir %s", d.path)
	}
	return nil
}
