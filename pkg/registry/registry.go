// SPDX-License-Identifier: Apache-2.0

// Package registry parses the flat registry files that live in the shared
// dotfiles tree: the package list (packages.config) and the minimum tool
// version list (versions.config). Parsing is pure; malformed lines are
// skipped rather than failing the run.
package registry

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PackageEntry is one resolved line of the package registry: a package
// directory name and the absolute path its contents link into.
type PackageEntry struct {
	Name       string
	TargetPath string
}

// PathVars maps recognized target-path tokens to their values. Substitution
// is a fixed textual whitelist; registry text is never passed through a
// shell or any other evaluator.
type PathVars struct {
	Home         string
	XDGConfigDir string
}

// ParsePackages reads the package registry at path. Lines are
// "name[:target]"; blank lines and #-comments are skipped. A line without
// ":" targets the home directory.
func ParsePackages(path string, vars PathVars) ([]PackageEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package registry: %w", err)
	}
	defer f.Close()

	var entries []PackageEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name := line
		target := vars.Home
		if idx := strings.Index(line, ":"); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			target = ExpandTarget(strings.TrimSpace(line[idx+1:]), vars)
		}
		if name == "" {
			continue
		}

		entries = append(entries, PackageEntry{Name: name, TargetPath: target})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read package registry: %w", err)
	}

	return entries, nil
}

// ExpandTarget substitutes the recognized path tokens in a registry target.
// Unrecognized $-tokens are left untouched.
func ExpandTarget(target string, vars PathVars) string {
	if target == "" {
		return vars.Home
	}
	if target == "~" {
		return vars.Home
	}
	if strings.HasPrefix(target, "~/") {
		target = vars.Home + target[1:]
	}
	target = strings.ReplaceAll(target, "$XDG_CONFIG_HOME", vars.XDGConfigDir)
	target = strings.ReplaceAll(target, "$HOME", vars.Home)
	return target
}
