// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"context"
	"os/exec"

	"github.com/charmbracelet/log"
)

// KeyIsEncrypted probes whether an SSH private key carries a passphrase by
// attempting to derive its public key with an empty passphrase. Success
// means the key is unprotected. The probe is non-interactive; it never
// prompts. When ssh-keygen is unavailable the key is assumed protected so
// a stripped-down machine does not lock the operator out.
func KeyIsEncrypted(ctx context.Context, keyPath string) bool {
	if _, err := exec.LookPath("ssh-keygen"); err != nil {
		log.Debugf("machine: ssh-keygen not on PATH, cannot probe %s", keyPath)
		return true
	}

	cmd := exec.CommandContext(ctx, "ssh-keygen", "-y", "-P", "", "-f", keyPath)
	if err := cmd.Run(); err != nil {
		// Empty passphrase was rejected: the key is protected
		return true
	}
	return false
}

// RegisterWithAgent hands a key to the platform SSH agent so its
// passphrase can be retrieved non-interactively later. Best-effort: a
// missing or unresponsive agent is logged and ignored.
func RegisterWithAgent(ctx context.Context, keyPath string) {
	if _, err := exec.LookPath("ssh-add"); err != nil {
		log.Debugf("machine: ssh-add not on PATH, skipping agent registration")
		return
	}

	cmd := exec.CommandContext(ctx, "ssh-add", keyPath)
	if err := cmd.Run(); err != nil {
		log.Warnf("failed to register %s with ssh agent: %v", keyPath, err)
	}
}
