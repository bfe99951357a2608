// SPDX-License-Identifier: Apache-2.0
package toolver

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNotInstalled marks a tool absent from PATH. Advisory only; status
// reports it as a warning, never a failure of the run.
var ErrNotInstalled = errors.New("not installed")

// versionArgs overrides the default "--version" invocation for tools with
// their own conventions.
var versionArgs = map[string][]string{
	"go":   {"version"},
	"java": {"-version"},
	"ssh":  {"-V"},
}

// Detect runs a tool's version-reporting command and extracts the first
// dot-separated numeric version from its output.
func Detect(ctx context.Context, tool string) (string, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return "", ErrNotInstalled
	}

	args, ok := versionArgs[tool]
	if !ok {
		args = []string{"--version"}
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out // some tools (java, ssh) report on stderr
	if err := cmd.Run(); err != nil {
		log.Debugf("toolver: %s %s failed: %v", tool, strings.Join(args, " "), err)
		return "", ErrNotInstalled
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if v := Normalize(scanner.Text()); v != "" {
			return v, nil
		}
	}

	return "", ErrNotInstalled
}

// Result is the per-tool outcome of a compliance check.
type Result struct {
	Tool      string
	Required  string
	Detected  string
	Installed bool
	Satisfied bool
}

// Requirements is the read surface toolver needs from the version registry.
type Requirements interface {
	Tools() []string
	Requirement(tool string) (string, bool)
}

// Check detects every tool named in the requirements and compares it
// against its declared minimum. Missing tools are reported, not fatal.
func Check(ctx context.Context, reqs Requirements) []Result {
	var results []Result
	for _, tool := range reqs.Tools() {
		required, _ := reqs.Requirement(tool)
		result := Result{Tool: tool, Required: required}

		detected, err := Detect(ctx, tool)
		if err == nil {
			result.Installed = true
			result.Detected = detected
			result.Satisfied = Meets(detected, required)
		}

		results = append(results, result)
	}
	return results
}
