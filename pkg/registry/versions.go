// SPDX-License-Identifier: Apache-2.0
package registry

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Requirements is the parsed minimum-version registry. Order is preserved
// for stable status output.
type Requirements struct {
	tools []string
	min   map[string]string
}

// ParseVersions reads the version requirements file at path. Lines are
// "tool:version"; blank lines and #-comments are skipped, as are lines
// without a ":".
func ParseVersions(path string) (*Requirements, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read version registry: %w", err)
	}
	defer f.Close()

	reqs := &Requirements{min: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		tool := strings.TrimSpace(line[:idx])
		version := strings.TrimSpace(line[idx+1:])
		if tool == "" || version == "" {
			continue
		}

		if _, seen := reqs.min[tool]; !seen {
			reqs.tools = append(reqs.tools, tool)
		}
		reqs.min[tool] = version
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read version registry: %w", err)
	}

	return reqs, nil
}

// Requirement returns the declared minimum version for a tool. An unknown
// tool is absent, not an error.
func (r *Requirements) Requirement(tool string) (string, bool) {
	v, ok := r.min[tool]
	return v, ok
}

// Tools returns all tools with declared requirements, in file order.
func (r *Requirements) Tools() []string {
	return r.tools
}
