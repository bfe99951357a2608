// SPDX-License-Identifier: Apache-2.0
package gate

import (
	"fmt"
	"os"

	"github.com/Work-Fort/Hearth/cmd/cmdutil"
	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/gate"
	"github.com/spf13/cobra"
)

// EnvValidated marks a shell session where the gate already passed, so
// nested shells skip the key probes.
const EnvValidated = "HEARTH_GATE_VALIDATED"

// NewGateCmd creates the gate command
func NewGateCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Verify that every configured key is passphrase-protected",
		Long: `Probe every SSH key referenced by the machine SSH fragment and the GPG
signing key from gpg.conf, and fail if any of them can be used without a
passphrase.

Intended for shell startup files: a failing gate blocks the session until
the offending key is re-encrypted. Set ` + EnvValidated + `=1 after a pass
to skip the probes in nested shells.`,
		Example: `  # In ~/.zshrc or ~/.bashrc
  if hearth gate --quiet; then
    export ` + EnvValidated + `=1
  else
    exit 1
  fi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv(EnvValidated) == "1" {
				return nil
			}

			if err := cmdutil.NewGate().Validate(cmd.Context(), gate.NewSession()); err != nil {
				return err
			}

			if !quiet {
				theme := config.CurrentTheme
				fmt.Println(theme.SuccessMessage("All configured keys are passphrase-protected"))
				fmt.Println(theme.SubtleStyle().Render("export " + EnvValidated + "=1 to skip this check in nested shells"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing on success")
	return cmd
}
