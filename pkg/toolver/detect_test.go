// SPDX-License-Identifier: Apache-2.0
package toolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeTool installs a shell script named tool on PATH that prints output.
func fakeTool(t *testing.T, tool, output string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho '" + output + "'\n"
	if err := os.WriteFile(filepath.Join(dir, tool), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake tool: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestDetect(t *testing.T) {
	fakeTool(t, "nodeish", "v24.3.0")

	got, err := Detect(context.Background(), "nodeish")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got != "24.3.0" {
		t.Errorf("Detect() = %q, want %q", got, "24.3.0")
	}
}

func TestDetectNotInstalled(t *testing.T) {
	_, err := Detect(context.Background(), "hearth-no-such-tool")
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Detect() error = %v, want ErrNotInstalled", err)
	}
}

type fakeReqs struct {
	tools []string
	min   map[string]string
}

func (f fakeReqs) Tools() []string { return f.tools }
func (f fakeReqs) Requirement(tool string) (string, bool) {
	v, ok := f.min[tool]
	return v, ok
}

func TestCheck(t *testing.T) {
	fakeTool(t, "nodeish", "v24.3.0")

	reqs := fakeReqs{
		tools: []string{"nodeish", "hearth-no-such-tool"},
		min:   map[string]string{"nodeish": "v24.1.0", "hearth-no-such-tool": "1.0.0"},
	}

	results := Check(context.Background(), reqs)
	if len(results) != 2 {
		t.Fatalf("Check() returned %d results, want 2", len(results))
	}

	if !results[0].Installed || !results[0].Satisfied {
		t.Errorf("nodeish result = %+v, want installed and satisfied", results[0])
	}
	if results[1].Installed || results[1].Satisfied {
		t.Errorf("missing tool result = %+v, want not installed", results[1])
	}
}
