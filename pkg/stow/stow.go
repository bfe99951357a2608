// SPDX-License-Identifier: Apache-2.0

// Package stow wraps the GNU Stow executable, the external collaborator
// that owns all symlink creation and removal. Hearth never re-implements
// symlink algebra; it asks stow what would change and classifies the answer.
package stow

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Runner invokes a stow binary against one dotfiles tree.
type Runner struct {
	Bin string // stow executable, usually "stow"
	Dir string // dotfiles tree containing the package directories
}

// NewRunner creates a Runner for the given stow binary and dotfiles tree.
func NewRunner(bin, dir string) *Runner {
	return &Runner{Bin: bin, Dir: dir}
}

// Simulate runs a dry-run restow of pkg into target and classifies the
// output. Nothing on disk changes.
func (r *Runner) Simulate(ctx context.Context, target, pkg string) Outcome {
	stdout, stderr, err := r.run(ctx, "--simulate", "--restow", "--verbose=1",
		"--target="+target, pkg)
	return classify(stdout, stderr, err)
}

// Apply forces a restow of pkg into target, creating the target directory
// first if absent.
func (r *Runner) Apply(ctx context.Context, target, pkg string) error {
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create target directory %s: %w", target, err)
	}

	_, stderr, err := r.run(ctx, "--restow", "--target="+target, pkg)
	if err != nil {
		return fmt.Errorf("stow failed for %s: %s", pkg, firstLine(stderr, err.Error()))
	}
	return nil
}

// Unstow removes pkg's links from target. A target that no longer exists is
// treated as already unstowed.
func (r *Runner) Unstow(ctx context.Context, target, pkg string) error {
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return nil
	}

	_, stderr, err := r.run(ctx, "--delete", "--target="+target, pkg)
	if err != nil {
		return fmt.Errorf("unstow failed for %s: %s", pkg, firstLine(stderr, err.Error()))
	}
	return nil
}

func (r *Runner) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.Bin, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	log.Debugf("stow: %s %v exit=%v stdout=%q stderr=%q", r.Bin, args, err,
		stdout.String(), stderr.String())

	return stdout.String(), stderr.String(), err
}
