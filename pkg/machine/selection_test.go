// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"reflect"
	"testing"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		max      int
		expected Selection
	}{
		{"all sentinel", "all", 3, Selection{Kind: SelectionAll}},
		{"all uppercase", "ALL", 3, Selection{Kind: SelectionAll}},
		{"none sentinel", "none", 3, Selection{Kind: SelectionNone}},
		{"empty is none", "", 3, Selection{Kind: SelectionNone}},
		{"comma list", "1,3", 3, Selection{Kind: SelectionIndices, Indices: []int{1, 3}}},
		{"unordered input sorted", "3, 1", 3, Selection{Kind: SelectionIndices, Indices: []int{1, 3}}},
		{"duplicates collapsed", "2,2", 3, Selection{Kind: SelectionIndices, Indices: []int{2}}},
		{"invalid tokens ignored", "1,x,9,2", 3, Selection{Kind: SelectionIndices, Indices: []int{1, 2}}},
		{"all indices collapses to all", "1,2,3", 3, Selection{Kind: SelectionAll}},
		{"nothing valid is none", "x,0,99", 3, Selection{Kind: SelectionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(tt.raw, tt.max)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseSelection(%q, %d) = %+v, want %+v", tt.raw, tt.max, got, tt.expected)
			}
		})
	}
}

func TestSelectionResolve(t *testing.T) {
	scanned := []string{"/home/u/.ssh/id_ed25519", "/home/u/.ssh/id_rsa", "/home/u/.ssh/work"}

	all := Selection{Kind: SelectionAll}.Resolve(scanned)
	if !reflect.DeepEqual(all, scanned) {
		t.Errorf("all resolved to %v", all)
	}

	some := Selection{Kind: SelectionIndices, Indices: []int{1, 3}}.Resolve(scanned)
	want := []string{"/home/u/.ssh/id_ed25519", "/home/u/.ssh/work"}
	if !reflect.DeepEqual(some, want) {
		t.Errorf("indices resolved to %v, want %v", some, want)
	}

	if none := (Selection{Kind: SelectionNone}).Resolve(scanned); none != nil {
		t.Errorf("none resolved to %v", none)
	}
}

func TestSelectionStringRoundTrip(t *testing.T) {
	tests := []string{"all", "none", "1,3"}
	for _, s := range tests {
		parsed := ParseSelection(s, 5)
		if parsed.String() != s {
			t.Errorf("round trip of %q yielded %q", s, parsed.String())
		}
	}
}
