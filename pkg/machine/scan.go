// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanKeys returns the absolute paths of private key files in dir, sorted
// by name so scan order is stable across invocations. A file counts as a
// private key when its first line is a PEM/OpenSSH private key header;
// public keys, configs and host files never match.
func ScanKeys(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".pub") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if isPrivateKeyFile(path) {
			keys = append(keys, path)
		}
	}
	sort.Strings(keys)

	return keys, nil
}

// isPrivateKeyFile sniffs the first line for a private key header.
func isPrivateKeyFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false
	}
	line := scanner.Text()
	return strings.HasPrefix(line, "-----BEGIN") && strings.Contains(line, "PRIVATE KEY")
}
