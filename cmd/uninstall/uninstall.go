// SPDX-License-Identifier: Apache-2.0
package uninstall

import (
	"context"
	"fmt"

	"github.com/Work-Fort/Hearth/cmd/cmdutil"
	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/stow"
	"github.com/Work-Fort/Hearth/pkg/ui"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command
func NewUninstallCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove all dotfiles package links",
		Long: `Remove the symlinks for every package listed in packages.config.

Only links pointing into the dotfiles tree are removed; regular files are
never touched. Machine-local credential fragments (git identity, SSH config,
gpg.conf) are left in place so a later install can reuse them as defaults.`,
		Example: `  # Unlink everything, with confirmation
  hearth uninstall

  # Skip the confirmation prompt
  hearth uninstall --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && cmdutil.IsInteractive() {
				ok, err := ui.Confirm("Remove all dotfiles package links?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted")
					return nil
				}
			}
			return Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// Run unstows every registered package. Exported so reinstall can reuse it.
func Run(ctx context.Context) error {
	entries, err := cmdutil.LoadEntries()
	if err != nil {
		return err
	}

	theme := config.CurrentTheme
	dir := config.DotfilesDir()
	runner := stow.NewRunner(config.GetStowBin(), dir)

	log.Infof("Unlinking %d package(s) from %s", len(entries), dir)
	fmt.Println()

	var failed int
	for _, entry := range entries {
		if err := runner.Unstow(ctx, entry.TargetPath, entry.Name); err != nil {
			failed++
			fmt.Printf("  %s %-16s %v\n", theme.ConflictIndicator(), entry.Name, err)
			continue
		}
		fmt.Printf("  %s %-16s unlinked\n", theme.CleanIndicator(), entry.Name)
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d package(s) could not be unlinked", failed)
	}
	fmt.Println(theme.SubtleStyle().Render("Machine-local credential files were kept"))
	return nil
}
