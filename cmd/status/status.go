// SPDX-License-Identifier: Apache-2.0
package status

import (
	"fmt"
	"strings"

	"github.com/Work-Fort/Hearth/cmd/cmdutil"
	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/gate"
	"github.com/Work-Fort/Hearth/pkg/machine"
	"github.com/Work-Fort/Hearth/pkg/reconcile"
	"github.com/Work-Fort/Hearth/pkg/registry"
	"github.com/Work-Fort/Hearth/pkg/toolver"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report link, tool, and key compliance for this machine",
		Long: `Report the state of this machine without changing anything.

Three sections are checked:
  - Packages: a stow dry-run per registry entry (clean, pending, conflict, missing)
  - Tools:    installed versions against the minimums in versions.config
  - Keys:     every configured SSH and GPG key must be passphrase-protected

The exit code is non-zero when any section reports a problem, so status can
gate scripts and shell profiles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			theme := config.CurrentTheme
			var problems []string

			// Packages
			entries, err := cmdutil.LoadEntries()
			if err != nil {
				return err
			}
			fmt.Println(theme.InfoStyle().Render("Packages"))
			results := cmdutil.NewEngine().Reconcile(ctx, entries, reconcile.DryRun)
			cmdutil.PrintResults(results)
			summary := reconcile.Summarize(results)
			if !summary.OK() {
				problems = append(problems, "packages are not fully linked")
			}

			// Tools
			fmt.Println()
			fmt.Println(theme.InfoStyle().Render("Tools"))
			reqs, err := registry.ParseVersions(config.VersionsPath())
			if err != nil {
				fmt.Printf("  %s %s\n", theme.MissingIndicator(), theme.SubtleStyle().Render("no versions.config in the dotfiles tree"))
			} else {
				for _, r := range toolver.Check(ctx, reqs) {
					switch {
					case !r.Installed:
						fmt.Printf("  %s %-16s not installed (need >= %s)\n", theme.ConflictIndicator(), r.Tool, r.Required)
						problems = append(problems, r.Tool+" is not installed")
					case !r.Satisfied:
						fmt.Printf("  %s %-16s %s (need >= %s)\n", theme.PendingIndicator(), r.Tool, r.Detected, r.Required)
						problems = append(problems, r.Tool+" is below the required version")
					default:
						fmt.Printf("  %s %-16s %s\n", theme.CleanIndicator(), r.Tool, r.Detected)
					}
				}
			}

			// Keys
			fmt.Println()
			fmt.Println(theme.InfoStyle().Render("Keys"))
			if err := cmdutil.NewGate().Validate(ctx, gate.NewSession()); err != nil {
				fmt.Printf("  %s %v\n", theme.ConflictIndicator(), err)
				problems = append(problems, "an unprotected key is configured")
			} else {
				fmt.Printf("  %s all configured keys are passphrase-protected\n", theme.CleanIndicator())
			}
			if machine.ParseDefaultKey(config.GlobalPaths.GpgConfig) == "" {
				fmt.Printf("  %s %s\n", theme.MissingIndicator(), theme.SubtleStyle().Render("no GPG signing key selected"))
			}

			if len(problems) > 0 {
				return fmt.Errorf("status check failed: %s", strings.Join(problems, "; "))
			}
			fmt.Println()
			fmt.Println(theme.SuccessMessage("Machine is compliant"))
			return nil
		},
	}
}
