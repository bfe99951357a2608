// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ConfigValue represents a configuration key-value pair with its source
type ConfigValue struct {
	Key    string
	Value  interface{}
	Source string
}

// knownKeys is the whitelist of settable configuration keys.
var knownKeys = map[string]string{
	"use-tui":                "Enable terminal UI mode",
	"log-level":              "Log level: disabled, debug, info, warn, error",
	"dotfiles-dir":           "Location of the shared dotfiles tree",
	"stow-bin":               "GNU Stow executable used for linking",
	"ssh-key-dir":            "Directory scanned for SSH private keys",
	"gate.gpg-probe-timeout": "Time limit for the GPG empty-passphrase probe",
	"github-token":           "GitHub API token for self-update rate limits",
}

// userConfigPath returns the user config file path.
func userConfigPath() string {
	return filepath.Join(GlobalPaths.ConfigDir, ConfigFileName+DefaultConfigExt)
}

// ValidateKey returns an error for keys outside the whitelist.
func ValidateKey(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown configuration key %q (see 'hearth config list')", key)
	}
	return nil
}

// SetConfigValue sets a configuration value in the user config file
func SetConfigValue(key, valueStr string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	configPath := userConfigPath()

	// Create a new Viper instance for isolated config file operations
	v := viper.New()
	v.SetConfigType(ConfigType)
	v.SetConfigFile(configPath)

	// Read existing config if it exists
	_ = v.ReadInConfig()

	v.Set(key, parseValue(valueStr))

	// Write config using the safe pattern - try SafeWriteConfigAs first
	if err := v.SafeWriteConfigAs(configPath); err != nil {
		// If file already exists, overwrite it
		if _, ok := err.(viper.ConfigFileAlreadyExistsError); ok {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// GetConfigValue returns the effective value of a key.
func GetConfigValue(key string) (interface{}, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return viper.Get(key), nil
}

// UnsetConfigValue removes a key from the user config file.
func UnsetConfigValue(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	configPath := userConfigPath()

	v := viper.New()
	v.SetConfigType(ConfigType)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("no user config file to modify: %w", err)
	}

	// Viper has no delete; rebuild the settings map without the key
	settings := v.AllSettings()
	deleteNested(settings, strings.Split(key, "."))

	out := viper.New()
	out.SetConfigType(ConfigType)
	for k, val := range settings {
		out.Set(k, val)
	}
	if err := out.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ListConfigValues returns all known keys with their effective values.
func ListConfigValues() []ConfigValue {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]ConfigValue, 0, len(keys))
	for _, k := range keys {
		values = append(values, ConfigValue{
			Key:    k,
			Value:  viper.Get(k),
			Source: knownKeys[k],
		})
	}
	return values
}

// deleteNested removes a dotted key path from a nested settings map.
func deleteNested(m map[string]interface{}, path []string) {
	if len(path) == 1 {
		delete(m, path[0])
		return
	}
	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		return
	}
	deleteNested(child, path[1:])
	if len(child) == 0 {
		delete(m, path[0])
	}
}

// parseValue converts a string to bool/int where it cleanly parses,
// otherwise keeps it as a string.
func parseValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return s
}
