// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitViper initializes Viper configuration with defaults and search paths
// Precedence order: ENV > dir-conf > user-conf > defaults
func InitViper() {
	// Set config type
	viper.SetConfigType(ConfigType)

	// Set defaults (lowest precedence)
	viper.SetDefault("use-tui", true)
	viper.SetDefault("log-level", "debug")
	viper.SetDefault("dotfiles-dir", "~/.dotfiles")
	viper.SetDefault("stow-bin", "stow")
	viper.SetDefault("ssh-key-dir", "~/.ssh")
	viper.SetDefault("gate.gpg-probe-timeout", "5s")
	viper.SetDefault("github-token", "") // No default for sensitive keys

	// Enable environment variable support (highest precedence)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// BindFlags binds cobra persistent flags to Viper keys so the config file
// and environment variables can supply flag values.
func BindFlags(flags *pflag.FlagSet) {
	_ = viper.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("use-tui", flags.Lookup("use-tui"))
	_ = viper.BindPFlag("dotfiles-dir", flags.Lookup("dotfiles-dir"))
}

// LoadConfig reads config files in precedence order
// Precedence: ENV > ./hearth.yaml > ~/.config/hearth/config.yaml > defaults
func LoadConfig() error {
	// First, try to read user config from XDG config directory
	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(GlobalPaths.ConfigDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read user config file: %w", err)
		}
		// Config file not found is OK
	}

	// Then, try to merge in local directory config (overrides user config).
	// A hearth.yaml checked into a dotfiles repo can pin dotfiles-dir and
	// stow-bin for everyone who clones it.
	viper.SetConfigName(LocalConfigFile)
	viper.AddConfigPath(".")

	if err := viper.MergeInConfig(); err != nil {
		// Ignore if local config doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read local config file: %w", err)
		}
	}

	return nil
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetDotfilesDir returns the dotfiles-dir configuration value
func GetDotfilesDir() string {
	return viper.GetString("dotfiles-dir")
}

// GetStowBin returns the stow-bin configuration value
func GetStowBin() string {
	return viper.GetString("stow-bin")
}

// GetSSHKeyDir returns the ssh-key-dir configuration value, ~-expanded
func GetSSHKeyDir() string {
	return ExpandHome(viper.GetString("ssh-key-dir"))
}

// GetGPGProbeTimeout returns the gate.gpg-probe-timeout configuration value
func GetGPGProbeTimeout() string {
	return viper.GetString("gate.gpg-probe-timeout")
}

// GetGitHubToken returns the github-token configuration value
func GetGitHubToken() string {
	return viper.GetString("github-token")
}
