// SPDX-License-Identifier: Apache-2.0
package cmdutil

import (
	"fmt"
	"os"
	"time"

	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/gate"
	"github.com/Work-Fort/Hearth/pkg/reconcile"
	"github.com/Work-Fort/Hearth/pkg/registry"
	"github.com/Work-Fort/Hearth/pkg/stow"
	"golang.org/x/term"
)

// IsInteractive checks if stdin is connected to a terminal AND the user wants TUI mode
func IsInteractive() bool {
	// Check both terminal capability and user preference
	return term.IsTerminal(int(os.Stdin.Fd())) && config.GetUseTUI()
}

// LoadEntries parses the package registry from the configured dotfiles tree.
func LoadEntries() ([]registry.PackageEntry, error) {
	vars := registry.PathVars{
		Home:         config.GlobalPaths.Home,
		XDGConfigDir: config.GlobalPaths.XDGConfigDir,
	}
	entries, err := registry.ParsePackages(config.PackagesPath(), vars)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no packages listed in %s", config.PackagesPath())
	}
	return entries, nil
}

// NewEngine builds the reconciliation engine over the configured dotfiles tree.
func NewEngine() *reconcile.Engine {
	dir := config.DotfilesDir()
	return reconcile.NewEngine(dir, stow.NewRunner(config.GetStowBin(), dir))
}

// NewGate builds the key gate from the machine-local config paths.
func NewGate() *gate.Gate {
	timeout, err := time.ParseDuration(config.GetGPGProbeTimeout())
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &gate.Gate{
		SSHConfigPath: config.GlobalPaths.SSHLocalConfig,
		GpgConfPath:   config.GlobalPaths.GpgConfig,
		Home:          config.GlobalPaths.Home,
		GPGTimeout:    timeout,
	}
}

// PrintResults writes one themed line per package reconciliation result.
func PrintResults(results []reconcile.Result) {
	theme := config.CurrentTheme
	for _, r := range results {
		fmt.Println(resultLine(theme, r))
	}
}

// resultLine formats one package's reconciliation outcome. Pending and
// conflict entries carry stow's first action or error line so the operator
// can see what would change.
func resultLine(theme config.Theme, r reconcile.Result) string {
	var indicator string
	switch {
	case r.Err != nil:
		indicator = theme.ConflictIndicator()
	case r.State == reconcile.Clean:
		indicator = theme.CleanIndicator()
	case r.State == reconcile.WouldLink:
		indicator = theme.PendingIndicator()
	case r.State == reconcile.Conflict:
		indicator = theme.ConflictIndicator()
	default:
		indicator = theme.MissingIndicator()
	}

	if r.Err != nil {
		return fmt.Sprintf("  %s %-16s failed: %v", indicator, r.Entry.Name, r.Err)
	}
	line := fmt.Sprintf("  %s %-16s %s", indicator, r.Entry.Name, r.State)
	if r.Detail != "" && (r.State == reconcile.Conflict || r.State == reconcile.WouldLink) {
		line += theme.SubtleStyle().Render("  " + r.Detail)
	}
	return line
}

// PrintSummary writes the aggregate counts line.
func PrintSummary(s reconcile.Summary) {
	theme := config.CurrentTheme
	fmt.Println()
	fmt.Printf("%s\n", theme.SubtleStyle().Render(fmt.Sprintf(
		"%d clean, %d pending, %d conflict(s), %d missing, %d failed",
		s.Clean, s.Pending, s.Conflicts, s.Missing, s.Failed)))
}
