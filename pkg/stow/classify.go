// SPDX-License-Identifier: Apache-2.0
package stow

import (
	"strings"
)

// Status is the classification of one dry-run invocation.
type Status int

const (
	// StatusClean means stow reports nothing to do
	StatusClean Status = iota
	// StatusWouldLink means stow reports pending LINK/UNLINK/MKDIR operations
	StatusWouldLink
	// StatusConflict means stow refused, usually because a real file occupies
	// the target
	StatusConflict
)

// Outcome carries the classification plus the first relevant output line
// for operator visibility.
type Outcome struct {
	Status Status
	Detail string // first action line (WouldLink) or first error line (Conflict)
}

// actionPrefixes are stow's verbose dry-run operation lines.
var actionPrefixes = []string{"LINK:", "UNLINK:", "MKDIR:"}

// classify maps one stow dry-run's textual output onto an Outcome. All of
// the string-matching heuristics live here and nowhere else.
//
// Stow plans the unstow phase of a restow first, so a package whose links
// are already correct prints a plain "UNLINK: X" followed by a
// "LINK: X => src (reverts previous action)" for the same target. The pair
// is a no-op; the reverting LINK cancels the UNLINK it undoes, and only
// unpaired action lines count as pending changes.
func classify(stdout, stderr string, runErr error) Outcome {
	combined := stdout + "\n" + stderr

	type action struct {
		line   string
		target string
		unlink bool
	}
	var pending []action
	sawRevert := false
	for _, line := range strings.Split(combined, "\n") {
		trimmed := strings.TrimSpace(line)
		prefix := actionPrefix(trimmed)
		if strings.Contains(trimmed, "reverts previous action") {
			sawRevert = true
			if prefix == "LINK:" {
				target := actionTarget(trimmed, prefix)
				for i := len(pending) - 1; i >= 0; i-- {
					if pending[i].unlink && pending[i].target == target {
						pending = append(pending[:i], pending[i+1:]...)
						break
					}
				}
			}
			continue
		}
		if prefix != "" {
			pending = append(pending, action{
				line:   trimmed,
				target: actionTarget(trimmed, prefix),
				unlink: prefix == "UNLINK:",
			})
		}
	}

	var firstAction string
	if len(pending) > 0 {
		firstAction = pending[0].line
	}

	if sawRevert && firstAction == "" && runErr == nil {
		return Outcome{Status: StatusClean}
	}

	if runErr != nil && firstAction == "" {
		return Outcome{Status: StatusConflict, Detail: firstLine(stderr, runErr.Error())}
	}

	if firstAction != "" {
		return Outcome{Status: StatusWouldLink, Detail: firstAction}
	}

	return Outcome{Status: StatusClean}
}

// actionPrefix returns the matching action prefix of line, or "".
func actionPrefix(line string) string {
	for _, p := range actionPrefixes {
		if strings.HasPrefix(line, p) {
			return p
		}
	}
	return ""
}

// actionTarget extracts the target path from an action line, dropping the
// "=> source" tail of LINK lines.
func actionTarget(line, prefix string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if i := strings.Index(rest, " =>"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// firstLine returns the first non-empty line of s, or fallback when s has
// none.
func firstLine(s, fallback string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
