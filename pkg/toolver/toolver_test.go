// SPDX-License-Identifier: Apache-2.0
package toolver

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "2.3.1", "2.3.1"},
		{"v prefix", "v24.1.0", "24.1.0"},
		{"go prefix", "go1.22.4", "1.22.4"},
		{"full go version line", "go version go1.22.4 linux/amd64", "1.22.4"},
		{"tmux", "tmux 3.4", "3.4"},
		{"stow", "stow (GNU Stow) version 2.3.1", "2.3.1"},
		{"openssh", "OpenSSH_9.6p1, OpenSSL 3.2.1", "9.6"},
		{"no digits", "unknown", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMeets(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		required string
		expected bool
	}{
		{"above minimum", "24.3.0", "v24.1.0", true},
		{"below minimum", "24.0.0", "v24.1.0", false},
		{"equal after normalization", "v1.2.3", "1.2.3", true},
		{"one patch below", "1.2.2", "1.2.3", false},
		{"shorter detected zero-padded", "1.2", "1.2.0", true},
		{"shorter required zero-padded", "1.2.1", "1.2", true},
		{"go prefixes", "go1.23.1", "go1.22", true},
		{"major below", "1.9.9", "2.0.0", false},
		{"unparsable detected", "not-a-version", "1.0.0", false},
		{"empty detected", "", "1.0.0", false},
		{"unparsable required", "1.0.0", "???", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Meets(tt.detected, tt.required); got != tt.expected {
				t.Errorf("Meets(%q, %q) = %v, want %v", tt.detected, tt.required, got, tt.expected)
			}
		})
	}
}
