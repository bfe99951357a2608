// SPDX-License-Identifier: Apache-2.0

// Package reconcile diffs the desired package placement declared by the
// registry against actual filesystem state, using stow dry-runs as the
// oracle for "what would change".
package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Hearth/pkg/registry"
	"github.com/Work-Fort/Hearth/pkg/stow"
)

// State is the per-package reconciliation outcome.
type State int

const (
	// Clean means the package is already linked as desired
	Clean State = iota
	// WouldLink means the dry-run reports pending link/unlink/mkdir operations
	WouldLink
	// Conflict means a pre-existing non-symlink file occupies the target
	Conflict
	// NotFound means the package directory is absent from the dotfiles tree
	NotFound
)

// String implements fmt.Stringer for report output.
func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case WouldLink:
		return "pending"
	case Conflict:
		return "conflict"
	case NotFound:
		return "missing"
	default:
		return "unknown"
	}
}

// Mode selects between reporting and acting.
type Mode int

const (
	// DryRun only classifies; nothing on disk changes
	DryRun Mode = iota
	// Apply restows every non-clean package after classification
	Apply
)

// Result pairs a registry entry with its reconciliation state.
type Result struct {
	Entry  registry.PackageEntry
	State  State
	Detail string // first action or error line from stow, if any
	Err    error  // apply failure, if any
}

// Simulator is the stow surface the engine consumes.
type Simulator interface {
	Simulate(ctx context.Context, target, pkg string) stow.Outcome
	Apply(ctx context.Context, target, pkg string) error
}

// Engine reconciles registry entries against one dotfiles tree.
type Engine struct {
	Dir  string // dotfiles tree containing package directories
	Stow Simulator
}

// NewEngine creates an Engine over the dotfiles tree at dir.
func NewEngine(dir string, runner Simulator) *Engine {
	return &Engine{Dir: dir, Stow: runner}
}

// Reconcile classifies every entry and, in Apply mode, restows each entry
// that is not already clean. A Conflict or NotFound entry never aborts the
// others; the full result set is always returned. State is re-derived from
// the filesystem on every call, never cached.
func (e *Engine) Reconcile(ctx context.Context, entries []registry.PackageEntry, mode Mode) []Result {
	results := make([]Result, 0, len(entries))

	for _, entry := range entries {
		result := Result{Entry: entry}

		pkgDir := filepath.Join(e.Dir, entry.Name)
		if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
			result.State = NotFound
			results = append(results, result)
			continue
		}

		outcome := e.Stow.Simulate(ctx, entry.TargetPath, entry.Name)
		switch outcome.Status {
		case stow.StatusClean:
			result.State = Clean
		case stow.StatusWouldLink:
			result.State = WouldLink
			result.Detail = outcome.Detail
		case stow.StatusConflict:
			result.State = Conflict
			result.Detail = outcome.Detail
		}

		if mode == Apply && result.State != Clean && result.State != Conflict {
			if err := e.Stow.Apply(ctx, entry.TargetPath, entry.Name); err != nil {
				log.Warnf("apply failed for package %s: %v", entry.Name, err)
				result.Err = err
			} else {
				result.State = Clean
			}
		}

		results = append(results, result)
	}

	return results
}

// Summary aggregates results into counts and an end-of-run error. Conflicts
// (and apply failures) are fatal only here, at summary time; missing
// package directories are advisory skips.
type Summary struct {
	Clean     int
	Pending   int
	Conflicts int
	Missing   int
	Failed    int
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		switch r.State {
		case Clean:
			s.Clean++
		case WouldLink:
			s.Pending++
		case Conflict:
			s.Conflicts++
		case NotFound:
			s.Missing++
		}
	}
	return s
}

// Err returns the fatal end-of-run error, if any.
func (s Summary) Err() error {
	if s.Conflicts > 0 || s.Failed > 0 {
		return fmt.Errorf("%d package(s) in conflict or failed; resolve the listed targets and re-run", s.Conflicts+s.Failed)
	}
	return nil
}

// OK reports whether every package reconciled clean.
func (s Summary) OK() bool {
	return s.Pending == 0 && s.Conflicts == 0 && s.Missing == 0 && s.Failed == 0
}
