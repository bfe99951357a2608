// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Prompter is the interactive surface the provisioner uses. ui.Prompter
// implements it with huh forms; tests supply a scripted fake.
type Prompter interface {
	Input(title, description, defaultValue string) (string, error)
	Note(text string)
}

// Provisioner runs the interactive credential workflow and writes the
// machine-local config files.
type Provisioner struct {
	Prompt      Prompter
	KeyDir      string // SSH private key directory to scan
	Home        string
	DotfilesDir string // shared tree; source of the gpg.conf template

	// Output locations
	IdentityPath  string
	SSHConfigPath string
	GpgConfPath   string
}

// Outcome reports what provisioning chose and wrote, for the install
// summary.
type Outcome struct {
	Identity     Identity
	SSHKeys      []string
	SigningKeyID string
}

// Run executes the provisioning state machine: prompt each field with its
// cached value as the default, resolve, validate, then write files in
// dependency order. Nothing is written until every required field resolves.
func (p *Provisioner) Run(ctx context.Context) (*Outcome, error) {
	// Identity, pre-filled from the global git config
	cached := CachedIdentity()

	name, err := p.Prompt.Input("Name", "Used for commit authorship and key selection", cached.Name)
	if err != nil {
		return nil, err
	}
	email, err := p.Prompt.Input("Email", "Used for commit authorship and key selection", cached.Email)
	if err != nil {
		return nil, err
	}

	id := Identity{Name: resolve(name, cached.Name), Email: resolve(email, cached.Email)}
	if id.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if id.Email == "" {
		return nil, &ValidationError{Field: "email"}
	}

	// SSH key selection, pre-filled by reverse-matching the previous fragment
	scanned, err := ScanKeys(p.KeyDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for keys: %w", p.KeyDir, err)
	}

	var sshKeys []string
	if len(scanned) == 0 {
		p.Prompt.Note("No SSH private keys found in " + p.KeyDir + "; skipping SSH setup.")
	} else {
		var listing strings.Builder
		listing.WriteString("SSH keys in " + p.KeyDir + ":\n")
		for i, key := range scanned {
			fmt.Fprintf(&listing, "  %d. %s\n", i+1, filepath.Base(key))
		}
		p.Prompt.Note(listing.String())

		defaultSel := "all"
		if sel, ok := CachedSSHSelection(scanned, p.SSHConfigPath, p.Home); ok {
			defaultSel = sel.String()
		}
		raw, err := p.Prompt.Input("SSH keys", "all, none, or comma-separated numbers", defaultSel)
		if err != nil {
			return nil, err
		}
		sshKeys = ParseSelection(resolve(raw, defaultSel), len(scanned)).Resolve(scanned)
	}

	// GPG signing key, pre-filled from the previous gpg.conf machine block
	secretKeys := ListSecretKeys(ctx)
	var signingKeyID string
	if len(secretKeys) > 0 {
		var listing strings.Builder
		listing.WriteString("GPG secret keys:\n")
		for i, key := range secretKeys {
			fmt.Fprintf(&listing, "  %d. %s %s\n", i+1, key.ID, key.UserID)
		}
		p.Prompt.Note(listing.String())

		defaultChoice := "none"
		if i := CachedGPGKey(secretKeys, p.GpgConfPath); i > 0 {
			defaultChoice = strconv.Itoa(i)
		}
		raw, err := p.Prompt.Input("Signing key", "number or none", defaultChoice)
		if err != nil {
			return nil, err
		}
		if i, err := strconv.Atoi(strings.TrimSpace(resolve(raw, defaultChoice))); err == nil && i >= 1 && i <= len(secretKeys) {
			signingKeyID = secretKeys[i-1].ID
		}
	}

	// Write machine-local files in dependency order
	if err := WriteIdentityFragment(p.IdentityPath, id, signingKeyID); err != nil {
		return nil, err
	}
	gpgTemplate := filepath.Join(p.DotfilesDir, "gpg", "gpg.conf")
	if err := MaterializeGpgConf(gpgTemplate, p.GpgConfPath, signingKeyID); err != nil {
		return nil, err
	}
	if err := WriteSSHFragment(p.SSHConfigPath, sshKeys); err != nil {
		return nil, err
	}

	// Protected keys are handed to the agent for non-interactive retrieval.
	// Unprotected keys are left alone; the security gate will name them.
	for _, key := range sshKeys {
		if KeyIsEncrypted(ctx, key) {
			RegisterWithAgent(ctx, key)
		} else {
			log.Warnf("key %s has no passphrase; the security gate will reject it", key)
		}
	}

	return &Outcome{Identity: id, SSHKeys: sshKeys, SigningKeyID: signingKeyID}, nil
}

// resolve applies the prompt contract: empty input keeps the cached value.
func resolve(raw, cached string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cached
	}
	return raw
}
