// SPDX-License-Identifier: Apache-2.0

// Package gate validates that every key referenced by the machine-local
// config is passphrase-protected. It is the one place in hearth where a
// failure is deliberately session-blocking: an unencrypted signing or
// authentication key is treated as an unacceptable standing risk.
package gate

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Hearth/pkg/machine"
)

// UnencryptedKeyError names a key stored without a passphrase.
type UnencryptedKeyError struct {
	Key string
}

func (e *UnencryptedKeyError) Error() string {
	return fmt.Sprintf("key %s has no passphrase; run 'ssh-keygen -p -f %s' (or 'gpg --edit-key' passwd for GPG) before continuing", e.Key, e.Key)
}

// Session carries gate state scoped to one process tree. The validated
// flag is an explicit field so nothing reads ambient global state; it is
// never persisted across sessions.
type Session struct {
	validated bool
}

// NewSession returns an unvalidated session.
func NewSession() *Session {
	return &Session{}
}

// Validated reports whether the gate already passed within this session.
func (s *Session) Validated() bool {
	return s.validated
}

// Gate probes the keys referenced by the machine-local config.
type Gate struct {
	SSHConfigPath string        // machine SSH fragment with IdentityFile entries
	GpgConfPath   string        // materialized gpg.conf
	Home          string        // for ~ expansion in IdentityFile paths
	GPGTimeout    time.Duration // bound on the empty-passphrase signing probe
}

// Validate checks every referenced key and caches the pass on the session.
// The result is cached only for the lifetime of the process tree; every new
// session re-derives it.
func (g *Gate) Validate(ctx context.Context, sess *Session) error {
	if sess.Validated() {
		return nil
	}

	for _, keyPath := range machine.ParseIdentityFiles(g.SSHConfigPath, g.Home) {
		if _, err := os.Stat(keyPath); err != nil {
			// A referenced key that no longer exists is a status concern,
			// not a security one
			continue
		}
		if !machine.KeyIsEncrypted(ctx, keyPath) {
			return &UnencryptedKeyError{Key: keyPath}
		}
	}

	if keyID := machine.ParseDefaultKey(g.GpgConfPath); keyID != "" {
		unencrypted, err := gpgKeyUnencrypted(ctx, keyID, g.GPGTimeout)
		if err == nil && unencrypted {
			return &UnencryptedKeyError{Key: keyID}
		}
	}

	sess.validated = true
	return nil
}

// gpgKeyUnencrypted probes the signing key. A running, responsive gpg-agent
// is taken as a proxy for an encrypted key (an unencrypted key would make
// the agent moot); this is a documented approximation, not a proof. Without
// an agent, a time-boxed empty-passphrase signing attempt decides: success
// means unencrypted, failure or timeout means protected.
func gpgKeyUnencrypted(ctx context.Context, keyID string, timeout time.Duration) (bool, error) {
	if _, err := exec.LookPath("gpg"); err != nil {
		return false, err
	}

	if agentResponsive(ctx) {
		log.Debugf("gate: gpg-agent responsive, treating key %s as protected", keyID)
		return false, nil
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, "gpg",
		"--batch",
		"--pinentry-mode", "loopback",
		"--passphrase", "",
		"--local-user", keyID,
		"--output", os.DevNull,
		"--sign", os.DevNull,
	)
	err := cmd.Run()
	if probeCtx.Err() != nil {
		log.Debugf("gate: gpg probe for %s timed out, treating as protected", keyID)
		return false, nil
	}
	// Signing with an empty passphrase only succeeds on an unprotected key
	return err == nil, nil
}

// agentResponsive checks for a live gpg-agent without starting one.
func agentResponsive(ctx context.Context) bool {
	if _, err := exec.LookPath("gpg-connect-agent"); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, "gpg-connect-agent", "--no-autostart", "/bye")
	return cmd.Run() == nil
}
