// SPDX-License-Identifier: Apache-2.0
package reinstall

import (
	"github.com/Work-Fort/Hearth/cmd/install"
	"github.com/Work-Fort/Hearth/cmd/uninstall"
	"github.com/spf13/cobra"
)

// NewReinstallCmd creates the reinstall command
func NewReinstallCmd() *cobra.Command {
	var skipProvision bool

	cmd := &cobra.Command{
		Use:   "reinstall",
		Short: "Unlink and relink all dotfiles packages",
		Long: `Remove every package link and run a fresh install.

Useful after restructuring the dotfiles tree, when stale links from renamed
packages would otherwise be left behind. Credential prompts are pre-filled
from the previous answers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := uninstall.Run(cmd.Context()); err != nil {
				return err
			}
			return install.Run(cmd.Context(), skipProvision)
		},
	}

	cmd.Flags().BoolVar(&skipProvision, "skip-provision", false, "Skip the credential prompts and only relink packages")
	return cmd
}
