// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configuration values",
		Long: `List every known configuration key with its effective value and a short
description.

Output format: key = value (description)`,
		Example: `  # List all configuration
  hearth config list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, cv := range config.ListConfigValues() {
				fmt.Printf("%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			}

			fmt.Println("\n" + config.CurrentTheme.SubtleStyle().Render("Configuration precedence: ENV > local config > user config > defaults"))
			return nil
		},
	}
}
