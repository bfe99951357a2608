// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get the effective value of a configuration key after applying the full
precedence chain (ENV > local config > user config > defaults).`,
		Args: cobra.ExactArgs(1),
		Example: `  # Get a configuration value
  hearth config get dotfiles-dir

  # Get a nested value
  hearth config get gate.gpg-probe-timeout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			value, err := config.GetConfigValue(key)
			if err != nil {
				return err
			}

			fmt.Printf("%s = %v\n", key, value)
			return nil
		},
	}
}
