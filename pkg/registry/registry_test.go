// SPDX-License-Identifier: Apache-2.0
package registry

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.config")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write registry file: %v", err)
	}
	return path
}

func TestParsePackages(t *testing.T) {
	vars := PathVars{Home: "/home/u", XDGConfigDir: "/home/u/.config"}

	tests := []struct {
		name     string
		content  string
		expected []PackageEntry
	}{
		{
			name:    "default target is home",
			content: "git\nnvim:/custom/target\n",
			expected: []PackageEntry{
				{Name: "git", TargetPath: "/home/u"},
				{Name: "nvim", TargetPath: "/custom/target"},
			},
		},
		{
			name:    "comments and blanks skipped",
			content: "# editors\n\nnvim\n   # trailing indent comment\nzsh\n",
			expected: []PackageEntry{
				{Name: "nvim", TargetPath: "/home/u"},
				{Name: "zsh", TargetPath: "/home/u"},
			},
		},
		{
			name:    "tilde expansion",
			content: "bin:~/bin\n",
			expected: []PackageEntry{
				{Name: "bin", TargetPath: "/home/u/bin"},
			},
		},
		{
			name:    "xdg config token",
			content: "alacritty:$XDG_CONFIG_HOME/alacritty\n",
			expected: []PackageEntry{
				{Name: "alacritty", TargetPath: "/home/u/.config/alacritty"},
			},
		},
		{
			name:    "home token",
			content: "tmux:$HOME\n",
			expected: []PackageEntry{
				{Name: "tmux", TargetPath: "/home/u"},
			},
		},
		{
			name:    "empty target falls back to home",
			content: "zsh:\n",
			expected: []PackageEntry{
				{Name: "zsh", TargetPath: "/home/u"},
			},
		},
		{
			name:     "nameless line skipped",
			content:  ":/tmp\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			entries, err := ParsePackages(path, vars)
			if err != nil {
				t.Fatalf("ParsePackages() error = %v", err)
			}
			if !reflect.DeepEqual(entries, tt.expected) {
				t.Errorf("ParsePackages() = %v, want %v", entries, tt.expected)
			}
		})
	}
}

func TestParsePackagesIdempotent(t *testing.T) {
	vars := PathVars{Home: "/home/u", XDGConfigDir: "/home/u/.config"}
	path := writeFile(t, "git\nnvim:/custom/target\nzsh:~\n")

	first, err := ParsePackages(path, vars)
	if err != nil {
		t.Fatalf("first parse error: %v", err)
	}
	second, err := ParsePackages(path, vars)
	if err != nil {
		t.Fatalf("second parse error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing twice differs: %v vs %v", first, second)
	}
}

func TestParsePackagesUnreadable(t *testing.T) {
	_, err := ParsePackages(filepath.Join(t.TempDir(), "missing.config"), PathVars{Home: "/home/u"})
	if err == nil {
		t.Fatal("expected error for missing registry file")
	}
}

func TestExpandTargetNoShellEvaluation(t *testing.T) {
	vars := PathVars{Home: "/home/u", XDGConfigDir: "/home/u/.config"}

	// Anything outside the whitelist passes through untouched
	got := ExpandTarget("$(rm -rf /)/x", vars)
	if got != "$(rm -rf /)/x" {
		t.Errorf("ExpandTarget() = %q, expected literal passthrough", got)
	}
	got = ExpandTarget("$UNKNOWN/x", vars)
	if got != "$UNKNOWN/x" {
		t.Errorf("ExpandTarget() = %q, expected literal passthrough", got)
	}
}
