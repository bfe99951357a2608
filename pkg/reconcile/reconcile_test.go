// SPDX-License-Identifier: Apache-2.0
package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Work-Fort/Hearth/pkg/registry"
	"github.com/Work-Fort/Hearth/pkg/stow"
)

// fakeStow scripts outcomes per package and records applies.
type fakeStow struct {
	outcomes map[string]stow.Outcome
	applyErr map[string]error
	applied  []string
}

func (f *fakeStow) Simulate(_ context.Context, _, pkg string) stow.Outcome {
	if o, ok := f.outcomes[pkg]; ok {
		return o
	}
	return stow.Outcome{Status: stow.StatusClean}
}

func (f *fakeStow) Apply(_ context.Context, _, pkg string) error {
	f.applied = append(f.applied, pkg)
	if err, ok := f.applyErr[pkg]; ok {
		return err
	}
	// Once applied, subsequent simulations report clean
	f.outcomes[pkg] = stow.Outcome{Status: stow.StatusClean}
	return nil
}

// mkPackages creates package directories under a temp dotfiles tree.
func mkPackages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(dir, name), 0755); err != nil {
			t.Fatalf("failed to create package dir: %v", err)
		}
	}
	return dir
}

func entries(names ...string) []registry.PackageEntry {
	var es []registry.PackageEntry
	for _, n := range names {
		es = append(es, registry.PackageEntry{Name: n, TargetPath: "/home/u"})
	}
	return es
}

func TestReconcileDryRun(t *testing.T) {
	dir := mkPackages(t, "git", "nvim", "zsh")
	fake := &fakeStow{outcomes: map[string]stow.Outcome{
		"nvim": {Status: stow.StatusWouldLink, Detail: "LINK: .config/nvim => ../dotfiles/nvim/.config/nvim"},
		"zsh":  {Status: stow.StatusConflict, Detail: "existing target is neither a symlink nor a directory: .zshrc"},
	}}

	engine := NewEngine(dir, fake)
	results := engine.Reconcile(context.Background(), entries("git", "nvim", "zsh", "ghost"), DryRun)

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}

	wantStates := []State{Clean, WouldLink, Conflict, NotFound}
	for i, want := range wantStates {
		if results[i].State != want {
			t.Errorf("entry %s state = %v, want %v", results[i].Entry.Name, results[i].State, want)
		}
	}

	if results[1].Detail == "" {
		t.Error("pending entry should carry the first action line")
	}
	if results[2].Detail != "existing target is neither a symlink nor a directory: .zshrc" {
		t.Errorf("conflict detail = %q", results[2].Detail)
	}
	if len(fake.applied) != 0 {
		t.Errorf("dry run applied packages: %v", fake.applied)
	}
}

func TestReconcileMissingSkipsExternalCall(t *testing.T) {
	dir := mkPackages(t) // no packages
	fake := &fakeStow{outcomes: map[string]stow.Outcome{}}

	engine := NewEngine(dir, fake)
	results := engine.Reconcile(context.Background(), entries("ghost"), Apply)

	if results[0].State != NotFound {
		t.Errorf("state = %v, want NotFound", results[0].State)
	}
	if len(fake.applied) != 0 {
		t.Errorf("missing package must not be applied, got %v", fake.applied)
	}
}

func TestReconcileApplyIsIdempotent(t *testing.T) {
	dir := mkPackages(t, "git", "nvim")
	fake := &fakeStow{outcomes: map[string]stow.Outcome{
		"git":  {Status: stow.StatusWouldLink, Detail: "LINK: .gitconfig => ../dotfiles/git/.gitconfig"},
		"nvim": {Status: stow.StatusWouldLink, Detail: "MKDIR: .config/nvim"},
	}}

	engine := NewEngine(dir, fake)
	es := entries("git", "nvim")

	first := engine.Reconcile(context.Background(), es, Apply)
	for _, r := range first {
		if r.State != Clean || r.Err != nil {
			t.Errorf("first apply: %s state = %v err = %v", r.Entry.Name, r.State, r.Err)
		}
	}
	if len(fake.applied) != 2 {
		t.Fatalf("applied %v, want both packages", fake.applied)
	}

	second := engine.Reconcile(context.Background(), es, Apply)
	for _, r := range second {
		if r.State != Clean {
			t.Errorf("second apply: %s state = %v, want Clean", r.Entry.Name, r.State)
		}
	}
	if len(fake.applied) != 2 {
		t.Errorf("second apply restowed already-clean packages: %v", fake.applied)
	}
}

func TestReconcileEntriesAreIsolated(t *testing.T) {
	dir := mkPackages(t, "bad", "good")
	fake := &fakeStow{
		outcomes: map[string]stow.Outcome{
			"bad":  {Status: stow.StatusWouldLink, Detail: "LINK: x"},
			"good": {Status: stow.StatusWouldLink, Detail: "LINK: y"},
		},
		applyErr: map[string]error{"bad": errors.New("boom")},
	}

	engine := NewEngine(dir, fake)
	results := engine.Reconcile(context.Background(), entries("bad", "good"), Apply)

	if results[0].Err == nil {
		t.Error("expected apply error for bad package")
	}
	if results[1].State != Clean || results[1].Err != nil {
		t.Errorf("good package should still apply: state=%v err=%v", results[1].State, results[1].Err)
	}
}

func TestSummary(t *testing.T) {
	results := []Result{
		{State: Clean},
		{State: WouldLink},
		{State: Conflict},
		{State: NotFound},
		{State: WouldLink, Err: errors.New("boom")},
	}

	s := Summarize(results)
	if s.Clean != 1 || s.Pending != 1 || s.Conflicts != 1 || s.Missing != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.Err() == nil {
		t.Error("summary with conflicts must be fatal")
	}
	if s.OK() {
		t.Error("summary with pending work is not OK")
	}

	clean := Summarize([]Result{{State: Clean}})
	if err := clean.Err(); err != nil {
		t.Errorf("all-clean summary should not be fatal: %v", err)
	}
	if !clean.OK() {
		t.Error("all-clean summary should be OK")
	}
}
