// SPDX-License-Identifier: Apache-2.0
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempPaths(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	old := GlobalPaths
	GlobalPaths = &Paths{
		ConfigDir: filepath.Join(tmpDir, "config"),
	}
	os.MkdirAll(GlobalPaths.ConfigDir, 0755)
	t.Cleanup(func() { GlobalPaths = old })
}

func TestSetConfigValue_RejectsUnknownKey(t *testing.T) {
	tempPaths(t)

	err := SetConfigValue("no-such-key", "value")
	if err == nil {
		t.Fatal("SetConfigValue should reject a key outside the whitelist")
	}
	if !strings.Contains(err.Error(), "no-such-key") {
		t.Errorf("error should name the offending key, got: %v", err)
	}
}

func TestSetConfigValue_WritesUserConfig(t *testing.T) {
	tempPaths(t)

	if err := SetConfigValue("stow-bin", "/usr/local/bin/stow"); err != nil {
		t.Fatalf("SetConfigValue failed: %v", err)
	}

	data, err := os.ReadFile(userConfigPath())
	if err != nil {
		t.Fatalf("user config file not written: %v", err)
	}
	if !strings.Contains(string(data), "/usr/local/bin/stow") {
		t.Errorf("config file missing value, got:\n%s", data)
	}

	// Second set should overwrite, not fail on the existing file
	if err := SetConfigValue("use-tui", "false"); err != nil {
		t.Fatalf("SetConfigValue on existing file failed: %v", err)
	}
}

func TestUnsetConfigValue(t *testing.T) {
	tempPaths(t)

	if err := SetConfigValue("ssh-key-dir", "/tmp/keys"); err != nil {
		t.Fatalf("SetConfigValue failed: %v", err)
	}
	if err := SetConfigValue("gate.gpg-probe-timeout", "10s"); err != nil {
		t.Fatalf("SetConfigValue failed: %v", err)
	}

	if err := UnsetConfigValue("gate.gpg-probe-timeout"); err != nil {
		t.Fatalf("UnsetConfigValue failed: %v", err)
	}

	data, err := os.ReadFile(userConfigPath())
	if err != nil {
		t.Fatalf("reading config after unset: %v", err)
	}
	if strings.Contains(string(data), "gpg-probe-timeout") {
		t.Errorf("unset key still present in config:\n%s", data)
	}
	if !strings.Contains(string(data), "/tmp/keys") {
		t.Errorf("unrelated key lost during unset:\n%s", data)
	}
}

func TestUnsetConfigValue_NoFile(t *testing.T) {
	tempPaths(t)

	if err := UnsetConfigValue("use-tui"); err == nil {
		t.Error("UnsetConfigValue should fail when no user config file exists")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"true", true},
		{"false", false},
		{"42", 42},
		{"5s", "5s"},
		{"~/.dotfiles", "~/.dotfiles"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestListConfigValuesCoversWhitelist(t *testing.T) {
	values := ListConfigValues()
	if len(values) != len(knownKeys) {
		t.Fatalf("ListConfigValues returned %d entries, want %d", len(values), len(knownKeys))
	}
	for _, v := range values {
		if _, ok := knownKeys[v.Key]; !ok {
			t.Errorf("ListConfigValues returned unknown key %q", v.Key)
		}
		if v.Source == "" {
			t.Errorf("key %q has no description", v.Key)
		}
	}
}
