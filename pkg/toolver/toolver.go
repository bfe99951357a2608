// SPDX-License-Identifier: Apache-2.0

// Package toolver compares heterogeneous tool version strings against the
// minimums declared in the version registry.
package toolver

import (
	"regexp"

	"github.com/hashicorp/go-version"
)

// versionRun matches the first dot-separated numeric run in a string.
var versionRun = regexp.MustCompile(`\d+(\.\d+)*`)

// Normalize strips any leading non-digit prefix ("v", "go", "tmux ") and
// trailing garbage, leaving the dotted numeric run. Returns "" when no
// numeric run exists.
func Normalize(s string) string {
	return versionRun.FindString(s)
}

// Meets reports whether a detected version satisfies a required minimum.
// Both strings are normalized first; segments compare left-to-right with
// shorter sequences zero-padded. An unparsable detected version never
// satisfies a requirement.
func Meets(detected, required string) bool {
	d := Normalize(detected)
	r := Normalize(required)
	if d == "" || r == "" {
		return false
	}

	dv, err := version.NewVersion(d)
	if err != nil {
		return false
	}
	rv, err := version.NewVersion(r)
	if err != nil {
		return false
	}

	return dv.GreaterThanOrEqual(rv)
}
