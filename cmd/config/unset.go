// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/spf13/cobra"
)

func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove configuration value",
		Long: `Remove a configuration key from the user config file.

Environment variables, local config, and defaults still apply after
removal.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Remove from user config
  hearth config unset github-token
  hearth config unset gate.gpg-probe-timeout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if err := config.UnsetConfigValue(key); err != nil {
				return err
			}

			fmt.Printf("Removed %s from user config\n", key)
			return nil
		},
	}
}
