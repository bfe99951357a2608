// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hearth configuration",
		Long: `Manage hearth configuration settings.

Configuration precedence (highest to lowest):
  1. Environment variables (HEARTH_*)
  2. Local config (./hearth.yaml, typically checked into the dotfiles repo)
  3. User config (~/.config/hearth/config.yaml)
  4. Defaults

config set and unset operate on the user config; a hearth.yaml checked into
the dotfiles tree is edited by hand so the change is shared via git.`,
		Example: `  # Point hearth at a non-default dotfiles tree
  hearth config set dotfiles-dir ~/src/dotfiles

  # Raise the GPG probe timeout on a slow machine
  hearth config set gate.gpg-probe-timeout 15s

  # Get a configuration value
  hearth config get stow-bin

  # Remove a configuration value
  hearth config unset github-token

  # List all configuration
  hearth config list`,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
