// SPDX-License-Identifier: Apache-2.0
package machine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Machine block delimiters appended to the shared gpg.conf template. gpg
// has no include mechanism, so the full file is materialized from the
// template plus this block.
const (
	gpgBlockBegin = "# >>> hearth machine block >>>"
	gpgBlockEnd   = "# <<< hearth machine block <<<"

	// NoSigningKeyMarker is written when the user selects no GPG key, so
	// later status runs report the gap instead of silently omitting it.
	NoSigningKeyMarker = "# no signing key selected"
)

// writeFileWithPerm creates path with perm set at creation, before any
// content is written, so a credential file is never briefly world-readable.
func writeFileWithPerm(path string, content string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	// An existing file keeps its old mode; force it
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteIdentityFragment writes the machine-local git identity file. The
// fragment carries no secrets itself, so 0644 is acceptable; its directory
// is still owner-only.
func WriteIdentityFragment(path string, id Identity, signingKeyID string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Managed by hearth. Machine-local; never commit this file.\n")
	b.WriteString("[user]\n")
	fmt.Fprintf(&b, "\tname = %s\n", id.Name)
	fmt.Fprintf(&b, "\temail = %s\n", id.Email)
	if signingKeyID != "" {
		fmt.Fprintf(&b, "\tsigningkey = %s\n", signingKeyID)
		b.WriteString("[commit]\n\tgpgsign = true\n")
	} else {
		b.WriteString(NoSigningKeyMarker + "\n")
		b.WriteString("[commit]\n\tgpgsign = false\n")
	}

	if err := writeFileWithPerm(path, b.String(), 0644); err != nil {
		return fmt.Errorf("failed to write identity fragment: %w", err)
	}
	return nil
}

// MaterializeGpgConf builds the full gpg.conf from the shared template plus
// the delimited machine block. A missing template is tolerated: the block
// alone still records the choice.
func MaterializeGpgConf(templatePath, outPath, signingKeyID string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0700); err != nil {
		return fmt.Errorf("failed to create gnupg directory: %w", err)
	}

	var b strings.Builder
	if tmpl, err := os.ReadFile(templatePath); err == nil {
		b.Write(tmpl)
		if !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}

	b.WriteString(gpgBlockBegin + "\n")
	if signingKeyID != "" {
		fmt.Fprintf(&b, "default-key %s\n", signingKeyID)
	} else {
		b.WriteString(NoSigningKeyMarker + "\n")
	}
	b.WriteString(gpgBlockEnd + "\n")

	if err := writeFileWithPerm(outPath, b.String(), 0600); err != nil {
		return fmt.Errorf("failed to write gpg config: %w", err)
	}
	return nil
}

// WriteSSHFragment writes the machine-local SSH config covering the
// selected keys under a single default host pattern. Key paths are always
// absolute. An empty selection still writes the fragment so the choice is
// recorded.
func WriteSSHFragment(path string, keys []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create ssh directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Managed by hearth. Machine-local; never commit this file.\n")
	if len(keys) > 0 {
		b.WriteString("Host *\n")
		b.WriteString("\tAddKeysToAgent yes\n")
		for _, key := range keys {
			fmt.Fprintf(&b, "\tIdentityFile %s\n", key)
		}
	} else {
		b.WriteString("# no keys selected\n")
	}

	if err := writeFileWithPerm(path, b.String(), 0600); err != nil {
		return fmt.Errorf("failed to write ssh fragment: %w", err)
	}
	return nil
}
