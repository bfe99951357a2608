// SPDX-License-Identifier: Apache-2.0
package install

import (
	"context"
	"fmt"

	"github.com/Work-Fort/Hearth/cmd/cmdutil"
	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/gate"
	"github.com/Work-Fort/Hearth/pkg/machine"
	"github.com/Work-Fort/Hearth/pkg/reconcile"
	"github.com/Work-Fort/Hearth/pkg/ui"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command
func NewInstallCmd() *cobra.Command {
	var skipProvision bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Provision this machine and link all dotfiles packages",
		Long: `Provision machine-local credentials and link every package from the
dotfiles tree into place.

This command:
  1. Prompts for identity, SSH keys, and a GPG signing key
     (previous answers are pre-filled as defaults)
  2. Writes the machine-local config fragments
  3. Restows every package listed in packages.config
  4. Verifies that every selected key is passphrase-protected

Packages whose directory is missing from the dotfiles tree are skipped.
A package blocked by a pre-existing file is reported as a conflict and
fails the run after all other packages have been processed.`,
		Example: `  # Full first-time setup
  hearth install

  # Relink packages without re-answering the credential prompts
  hearth install --skip-provision`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), skipProvision)
		},
	}

	cmd.Flags().BoolVar(&skipProvision, "skip-provision", false, "Skip the credential prompts and only link packages")
	return cmd
}

// Run executes the install workflow. Exported so reinstall can reuse it.
func Run(ctx context.Context, skipProvision bool) error {
	theme := config.CurrentTheme

	if !skipProvision {
		outcome, err := provision(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(theme.SuccessMessage(fmt.Sprintf("Provisioned identity %s <%s>", outcome.Identity.Name, outcome.Identity.Email)))
		if len(outcome.SSHKeys) > 0 {
			fmt.Println(theme.SuccessMessage(fmt.Sprintf("Configured %d SSH key(s)", len(outcome.SSHKeys))))
		}
		if outcome.SigningKeyID != "" {
			fmt.Println(theme.SuccessMessage("Configured GPG signing key " + outcome.SigningKeyID))
		}
	}

	entries, err := cmdutil.LoadEntries()
	if err != nil {
		return err
	}

	log.Infof("Linking %d package(s) from %s", len(entries), config.DotfilesDir())
	fmt.Println()

	results := cmdutil.NewEngine().Reconcile(ctx, entries, reconcile.Apply)
	cmdutil.PrintResults(results)

	summary := reconcile.Summarize(results)
	cmdutil.PrintSummary(summary)
	if err := summary.Err(); err != nil {
		return err
	}

	// Refuse to finish with an unprotected key on disk
	if err := cmdutil.NewGate().Validate(ctx, gate.NewSession()); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(theme.SuccessMessage("Install complete"))
	return nil
}

func provision(ctx context.Context) (*machine.Outcome, error) {
	p := &machine.Provisioner{
		Prompt:        ui.NewPrompter(),
		KeyDir:        config.GetSSHKeyDir(),
		Home:          config.GlobalPaths.Home,
		DotfilesDir:   config.DotfilesDir(),
		IdentityPath:  config.GlobalPaths.GitLocalConfig,
		SSHConfigPath: config.GlobalPaths.SSHLocalConfig,
		GpgConfPath:   config.GlobalPaths.GpgConfig,
	}
	return p.Run(ctx)
}
