// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// SecretKey is one secret key in the local GPG keyring.
type SecretKey struct {
	ID     string
	UserID string
}

// ListSecretKeys enumerates the local keyring via gpg's machine-readable
// colon format. A missing or failing gpg is treated as an empty keyring:
// GPG signing setup is optional.
func ListSecretKeys(ctx context.Context) []SecretKey {
	if _, err := exec.LookPath("gpg"); err != nil {
		return nil
	}

	cmd := exec.CommandContext(ctx, "gpg", "--list-secret-keys", "--with-colons")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		log.Debugf("machine: gpg --list-secret-keys failed: %v", err)
		return nil
	}

	return parseSecretKeys(out.String())
}

// parseSecretKeys reads gpg --with-colons output: "sec" records carry the
// key id in field 5, the following "uid" record carries the user id in
// field 10.
func parseSecretKeys(colons string) []SecretKey {
	var keys []SecretKey
	scanner := bufio.NewScanner(strings.NewReader(colons))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		switch fields[0] {
		case "sec":
			if len(fields) > 4 && fields[4] != "" {
				keys = append(keys, SecretKey{ID: fields[4]})
			}
		case "uid":
			if len(keys) > 0 && keys[len(keys)-1].UserID == "" && len(fields) > 9 {
				keys[len(keys)-1].UserID = fields[9]
			}
		}
	}
	return keys
}
