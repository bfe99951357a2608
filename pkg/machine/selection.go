// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"sort"
	"strconv"
	"strings"
)

// SelectionKind tags the Selection variant.
type SelectionKind int

const (
	// SelectionNone selects no keys; a valid, non-error choice
	SelectionNone SelectionKind = iota
	// SelectionAll selects every scanned key
	SelectionAll
	// SelectionIndices selects specific 1-based indices into the scan order
	SelectionIndices
)

// Selection is the parsed form of the user's key choice. The all/none
// sentinels are resolved once, at the input boundary, never re-matched as
// strings downstream.
type Selection struct {
	Kind    SelectionKind
	Indices []int // ascending, 1-based; only for SelectionIndices
}

// ParseSelection parses raw user input against a scan of max keys.
// Recognized: "all", "none", "" (none), or a comma list of 1-based indices.
// Invalid or out-of-range tokens are silently ignored; if nothing valid
// remains the selection is none.
func ParseSelection(raw string, max int) Selection {
	raw = strings.TrimSpace(strings.ToLower(raw))

	switch raw {
	case "", "none":
		return Selection{Kind: SelectionNone}
	case "all":
		return Selection{Kind: SelectionAll}
	}

	seen := make(map[int]bool)
	var indices []int
	for _, token := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 1 || n > max || seen[n] {
			continue
		}
		seen[n] = true
		indices = append(indices, n)
	}
	sort.Ints(indices)

	if len(indices) == 0 {
		return Selection{Kind: SelectionNone}
	}
	if len(indices) == max {
		return Selection{Kind: SelectionAll}
	}
	return Selection{Kind: SelectionIndices, Indices: indices}
}

// Resolve maps the selection onto the scanned key paths, preserving scan
// order.
func (s Selection) Resolve(scanned []string) []string {
	switch s.Kind {
	case SelectionAll:
		out := make([]string, len(scanned))
		copy(out, scanned)
		return out
	case SelectionIndices:
		var out []string
		for _, i := range s.Indices {
			if i >= 1 && i <= len(scanned) {
				out = append(out, scanned[i-1])
			}
		}
		return out
	default:
		return nil
	}
}

// String renders the selection in the form the prompt accepts, so a cached
// selection can round-trip as an interactive default.
func (s Selection) String() string {
	switch s.Kind {
	case SelectionAll:
		return "all"
	case SelectionIndices:
		parts := make([]string, len(s.Indices))
		for i, n := range s.Indices {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	default:
		return "none"
	}
}
