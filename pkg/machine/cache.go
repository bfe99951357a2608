// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Identity is the machine owner's name and email, used for commit
// authorship and signing configuration.
type Identity struct {
	Name  string
	Email string
}

// The cache readers below recover previously-chosen values for use as
// interactive defaults. They are pure reads: no writes, no prompts.

// CachedIdentity recovers the identity from the global git configuration.
// Either field may be empty when never configured.
func CachedIdentity() Identity {
	return Identity{
		Name:  gitConfig("user.name"),
		Email: gitConfig("user.email"),
	}
}

func gitConfig(key string) string {
	out, err := exec.Command("git", "config", "--global", key).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ParseIdentityFiles extracts the IdentityFile paths from an SSH config
// fragment, expanding a leading ~ against home. Missing file means no
// cached selection.
func ParseIdentityFiles(configPath, home string) []string {
	f, err := os.Open(configPath)
	if err != nil {
		return nil
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || !strings.EqualFold(fields[0], "IdentityFile") {
			continue
		}
		path := fields[1]
		if path == "~" || strings.HasPrefix(path, "~/") {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
		paths = append(paths, path)
	}

	return paths
}

// CachedSSHSelection reverse-matches the IdentityFile paths previously
// written to configPath against the current key scan. Cached paths that no
// longer exist in the scan are silently dropped, so a shrunk or grown key
// set yields a recomputed selection, never a verbatim replay.
func CachedSSHSelection(scanned []string, configPath, home string) (Selection, bool) {
	cached := ParseIdentityFiles(configPath, home)
	if len(cached) == 0 {
		return Selection{Kind: SelectionNone}, false
	}

	index := make(map[string]int, len(scanned))
	for i, path := range scanned {
		index[path] = i + 1
	}

	var indices []int
	for _, path := range cached {
		if i, ok := index[path]; ok {
			indices = append(indices, i)
		} else {
			log.Debugf("machine: cached key %s no longer scanned, dropping", path)
		}
	}
	if len(indices) == 0 {
		return Selection{Kind: SelectionNone}, false
	}

	// ParseSelection re-derives the all sentinel and ordering
	return ParseSelection(Selection{Kind: SelectionIndices, Indices: indices}.String(), len(scanned)), true
}

// CachedGPGKey reads the default signing key id from the materialized
// gpg.conf machine block and returns its 1-based index in the current
// secret-key list, or 0 when absent.
func CachedGPGKey(secretKeys []SecretKey, gpgConfPath string) int {
	keyID := ParseDefaultKey(gpgConfPath)
	if keyID == "" {
		return 0
	}
	for i, key := range secretKeys {
		if strings.EqualFold(key.ID, keyID) || strings.HasSuffix(strings.ToLower(key.ID), strings.ToLower(keyID)) {
			return i + 1
		}
	}
	return 0
}

// ParseDefaultKey extracts the default-key setting from a gpg.conf file.
func ParseDefaultKey(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && fields[0] == "default-key" {
			return fields[1]
		}
	}
	return ""
}
