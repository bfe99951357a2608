// SPDX-License-Identifier: Apache-2.0
package update

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Hearth/pkg/config"
	"github.com/Work-Fort/Hearth/pkg/github"
	"github.com/Work-Fort/Hearth/pkg/signing"
	"github.com/Work-Fort/Hearth/pkg/util"
	"github.com/spf13/cobra"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd(version, disableUpdate string) *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update hearth to the latest version",
		Long: `Update the hearth binary to the latest version from GitHub releases.

This command:
  1. Checks for the latest release on GitHub
  2. Downloads the appropriate archive for your architecture
  3. Verifies the PGP signature
  4. Verifies the SHA256 checksum
  5. Replaces the current binary

With --check, only step 1 runs: the latest release is reported and
nothing is downloaded or replaced.

Security:
  - All downloads are verified with PGP signatures
  - Checksums are validated before installation
  - Uses the official signing key from releases`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkOnly {
				return checkLatest(version)
			}
			return updateSelf(version, disableUpdate)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Report the latest release without installing it")
	return cmd
}

// checkLatest reports whether a newer release exists, without downloading
// anything. Uses the cheap latest-release endpoint rather than listing.
func checkLatest(version string) error {
	theme := config.CurrentTheme

	client := github.NewClient()
	parts := strings.Split(config.GitHubRepo, "/")
	release, err := client.GetLatestRelease(parts[0], parts[1])
	if err != nil {
		return fmt.Errorf("failed to fetch latest release: %w", err)
	}

	latestVersion := github.StripVersionPrefix(release.TagName)
	currentVersion := github.StripVersionPrefix(version)
	if newer, err := isNewer(latestVersion, currentVersion); err == nil && !newer {
		fmt.Printf("%s\n", theme.SuccessMessage("Already on latest version: "+currentVersion))
		return nil
	}

	fmt.Printf("%s New version available: %s (current: %s)\n", theme.InfoStyle().Render("→"), latestVersion, currentVersion)
	fmt.Println(theme.SubtleStyle().Render("Run 'hearth update' to install it"))
	return nil
}

func updateSelf(version, disableUpdate string) error {
	theme := config.CurrentTheme

	// Check if updates are disabled (set by package managers)
	if disableUpdate == "true" {
		fmt.Println()
		fmt.Println(theme.WarningMessage("Updates are disabled for this installation"))
		fmt.Println()
		fmt.Println("This version was installed by a package manager.")
		fmt.Println("Use your package manager to update:")
		fmt.Println()
		fmt.Printf("  • Arch Linux (AUR):  %s\n", theme.InfoStyle().Render("yay -Syu hearth"))
		fmt.Printf("  • Debian/Ubuntu:     %s\n", theme.InfoStyle().Render("sudo apt update && sudo apt upgrade hearth"))
		fmt.Printf("  • Generic:           Check your package manager's documentation\n")
		fmt.Println()
		return nil
	}

	log.Info("Checking for hearth updates...")

	client := github.NewClient()
	parts := strings.Split(config.GitHubRepo, "/")

	releases, err := client.GetReleases(parts[0], parts[1], 20)
	if err != nil {
		return fmt.Errorf("failed to fetch releases: %w", err)
	}
	if len(releases) == 0 {
		return fmt.Errorf("no releases found for %s", config.GitHubRepo)
	}

	releases = github.SortReleasesBySemver(releases)
	release := &releases[0]
	latestVersion := github.StripVersionPrefix(release.TagName)

	currentVersion := github.StripVersionPrefix(version)
	if newer, err := isNewer(latestVersion, currentVersion); err == nil && !newer {
		fmt.Printf("%s\n", theme.SuccessMessage("Already on latest version: "+currentVersion))
		return nil
	}

	fmt.Printf("%s New version available: %s (current: %s)\n", theme.InfoStyle().Render("→"), latestVersion, currentVersion)

	arch := runtime.GOARCH
	if arch != "amd64" && arch != "arm64" {
		return fmt.Errorf("unsupported architecture: %s (supported: amd64, arm64)", arch)
	}

	archiveName := fmt.Sprintf("hearth-linux-%s.tar.xz", arch)

	// Find required assets
	var archiveURL, checksumsURL, signatureURL, publicKeyURL string
	for _, asset := range release.Assets {
		switch asset.Name {
		case archiveName:
			archiveURL = asset.BrowserDownloadURL
		case "SHA256SUMS":
			checksumsURL = asset.BrowserDownloadURL
		case "SHA256SUMS.asc":
			signatureURL = asset.BrowserDownloadURL
		case "signing-key.asc":
			publicKeyURL = asset.BrowserDownloadURL
		}
	}

	if archiveURL == "" {
		return fmt.Errorf("could not find archive asset '%s' in release %s", archiveName, release.TagName)
	}
	if checksumsURL == "" {
		return fmt.Errorf("could not find SHA256SUMS in release %s", release.TagName)
	}
	if signatureURL == "" {
		return fmt.Errorf("could not find SHA256SUMS.asc in release %s", release.TagName)
	}
	if publicKeyURL == "" {
		return fmt.Errorf("could not find signing-key.asc in release %s", release.TagName)
	}

	// Create temp directory for downloads
	tempDir := filepath.Join(config.GlobalPaths.CacheDir, "update-"+latestVersion)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	archivePath := filepath.Join(tempDir, archiveName)
	checksumsPath := filepath.Join(tempDir, "SHA256SUMS")
	signaturePath := filepath.Join(tempDir, "SHA256SUMS.asc")
	publicKeyPath := filepath.Join(tempDir, "signing-key.asc")

	log.Info("Downloading update files...")

	downloads := []struct {
		url  string
		dest string
		name string
	}{
		{archiveURL, archivePath, archiveName},
		{checksumsURL, checksumsPath, "SHA256SUMS"},
		{signatureURL, signaturePath, "SHA256SUMS.asc"},
		{publicKeyURL, publicKeyPath, "signing-key.asc"},
	}
	for _, d := range downloads {
		if err := client.DownloadFile(d.url, d.dest, nil); err != nil {
			return fmt.Errorf("failed to download %s: %w", d.name, err)
		}
		fmt.Printf("  %s\n", theme.SuccessMessage("Downloaded "+d.name))
	}

	log.Info("Verifying signature...")
	if err := signing.VerifyDetachedFiles(checksumsPath, signaturePath, publicKeyPath); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	fmt.Printf("  %s\n", theme.SuccessMessage("Signature verified"))

	log.Info("Verifying checksum...")
	if err := util.VerifySHA256File(archivePath, checksumsPath); err != nil {
		return fmt.Errorf("checksum verification failed: %w", err)
	}
	fmt.Printf("  %s\n", theme.SuccessMessage("Checksum verified"))

	log.Info("Extracting archive...")
	if err := util.ExtractTarXZ(archivePath, tempDir); err != nil {
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	binaryPath := filepath.Join(tempDir, "hearth")
	if err := os.Chmod(binaryPath, 0755); err != nil {
		return fmt.Errorf("failed to make executable: %w", err)
	}

	// Get current binary path
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks if any
	realPath, err := filepath.EvalSymlinks(exePath)
	if err != nil {
		realPath = exePath
	}

	log.Info("Installing update...")
	data, err := os.ReadFile(binaryPath)
	if err != nil {
		return fmt.Errorf("failed to read new binary: %w", err)
	}

	if err := os.WriteFile(realPath, data, 0755); err != nil {
		return fmt.Errorf("failed to write new binary: %w", err)
	}

	fmt.Println()
	fmt.Printf("%s\n", theme.SuccessMessage("Updated to version "+latestVersion))
	fmt.Println()
	fmt.Println(theme.SubtleStyle().Render("Run 'hearth version' to verify"))

	return nil
}

// isNewer reports whether latest is strictly newer than current. Dev builds
// (unparsable versions) always update.
func isNewer(latest, current string) (bool, error) {
	lv, err := goversion.NewVersion(latest)
	if err != nil {
		return false, err
	}
	cv, err := goversion.NewVersion(current)
	if err != nil {
		return true, nil
	}
	return lv.GreaterThan(cv), nil
}
