// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GitHub repository for self-update releases
	GitHubRepo = "Work-Fort/Hearth"
	GitHubAPI  = "https://api.github.com"

	// Configuration
	EnvPrefix        = "HEARTH" // Environment variable prefix for Viper
	ConfigFileName   = "config" // Config file name for XDG config dir (without extension)
	LocalConfigFile  = "hearth" // Config file name for current directory (without extension)
	ConfigType       = "yaml"   // Config file type
	DefaultConfigExt = ".yaml"  // Default config file extension

	// Registry file names inside the dotfiles tree
	PackagesFile = "packages.config"
	VersionsFile = "versions.config"
)

// Paths holds all XDG-compliant directory paths
type Paths struct {
	Home      string
	DataDir   string
	CacheDir  string
	ConfigDir string
	BinDir    string

	// XDG config root, used for target-path token expansion
	XDGConfigDir string

	// Machine-local credential locations (outside the shared dotfiles tree)
	GitLocalConfig string // identity fragment
	SSHDir         string // private key directory and machine SSH config
	SSHLocalConfig string // machine SSH fragment with IdentityFile entries
	GnupgDir       string // GPG home
	GpgConfig      string // materialized gpg.conf
}

var (
	// GlobalPaths is the global paths instance
	GlobalPaths *Paths
)

func init() {
	GlobalPaths = GetPaths()
}

// GetPaths returns XDG-compliant directory paths
func GetPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
		os.Exit(1)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataDir := filepath.Join(dataHome, "hearth")
	sshDir := filepath.Join(home, ".ssh")
	gnupgDir := filepath.Join(home, ".gnupg")

	return &Paths{
		Home:           home,
		DataDir:        dataDir,
		CacheDir:       filepath.Join(cacheHome, "hearth"),
		ConfigDir:      filepath.Join(configHome, "hearth"),
		BinDir:         filepath.Join(dataDir, "bin"),
		XDGConfigDir:   configHome,
		GitLocalConfig: filepath.Join(configHome, "git", "local.config"),
		SSHDir:         sshDir,
		SSHLocalConfig: filepath.Join(sshDir, "config.local"),
		GnupgDir:       gnupgDir,
		GpgConfig:      filepath.Join(gnupgDir, "gpg.conf"),
	}
}

// DotfilesDir returns the configured shared dotfiles tree location.
func DotfilesDir() string {
	dir := GetDotfilesDir()
	if dir == "" {
		dir = filepath.Join(GlobalPaths.Home, ".dotfiles")
	}
	return ExpandHome(dir)
}

// PackagesPath returns the package registry file inside the dotfiles tree.
func PackagesPath() string {
	return filepath.Join(DotfilesDir(), PackagesFile)
}

// VersionsPath returns the version requirements file inside the dotfiles tree.
func VersionsPath() string {
	return filepath.Join(DotfilesDir(), VersionsFile)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return GlobalPaths.Home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(GlobalPaths.Home, path[2:])
	}
	return path
}

// IsRepoMode returns true when a hearth.yaml exists in the current
// working directory, meaning the CLI is operating within a managed repository.
func IsRepoMode() bool {
	_, err := os.Stat(filepath.Join(".", LocalConfigFile+DefaultConfigExt))
	return err == nil
}

// InitDirs creates all necessary directories
func InitDirs() error {
	dirs := []string{
		GlobalPaths.ConfigDir,
		GlobalPaths.DataDir,
		GlobalPaths.BinDir,
		GlobalPaths.CacheDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
