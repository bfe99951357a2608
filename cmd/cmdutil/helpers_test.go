// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/reconcile"
	"github.com/Work-Fort/Hearth/pkg/registry"
)

func TestResultLine(t *testing.T) {
	theme := config.CurrentTheme
	entry := registry.PackageEntry{Name: "git", TargetPath: "/home/u"}

	tests := []struct {
		name     string
		result   reconcile.Result
		contains []string
	}{
		{
			name:     "clean",
			result:   reconcile.Result{Entry: entry, State: reconcile.Clean},
			contains: []string{"git", "clean"},
		},
		{
			name: "pending reports first action line",
			result: reconcile.Result{
				Entry:  entry,
				State:  reconcile.WouldLink,
				Detail: "LINK: .gitconfig => ../dotfiles/git/.gitconfig",
			},
			contains: []string{"git", "pending", "LINK: .gitconfig => ../dotfiles/git/.gitconfig"},
		},
		{
			name: "conflict reports first error line",
			result: reconcile.Result{
				Entry:  entry,
				State:  reconcile.Conflict,
				Detail: "WARNING! stowing git would cause conflicts:",
			},
			contains: []string{"git", "conflict", "WARNING! stowing git would cause conflicts:"},
		},
		{
			name:     "apply failure reports the error",
			result:   reconcile.Result{Entry: entry, State: reconcile.WouldLink, Err: errors.New("exit status 2")},
			contains: []string{"git", "failed", "exit status 2"},
		},
		{
			name:     "missing",
			result:   reconcile.Result{Entry: entry, State: reconcile.NotFound},
			contains: []string{"git", "missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := resultLine(theme, tt.result)
			for _, want := range tt.contains {
				if !strings.Contains(line, want) {
					t.Errorf("resultLine() = %q, missing %q", line, want)
				}
			}
		})
	}
}
