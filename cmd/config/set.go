// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"path/filepath"

	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set configuration value",
		Long: `Set a configuration key in the user config file.

Keys use dot notation for nested values (e.g., gate.gpg-probe-timeout).
Boolean and numeric values are automatically detected and typed. Only
known keys are accepted; see 'hearth config list' for the full set.`,
		Args: cobra.ExactArgs(2),
		Example: `  # Set boolean values
  hearth config set use-tui false

  # Set string values
  hearth config set log-level info
  hearth config set dotfiles-dir ~/src/dotfiles

  # Set nested values with dot notation
  hearth config set gate.gpg-probe-timeout 10s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if err := config.SetConfigValue(key, value); err != nil {
				return err
			}

			configFile := filepath.Join(config.GlobalPaths.ConfigDir, config.ConfigFileName+config.DefaultConfigExt)
			fmt.Printf("Set %s = %s (%s)\n", key, value, configFile)
			return nil
		},
	}
}
