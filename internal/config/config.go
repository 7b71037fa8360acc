// Package config handles global refwire configuration: named server
// profiles, machine-local state, and stored credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the global refwire configuration.
type Config struct {
	// DefaultProfile is the name of the default profile (from Profiles).
	DefaultProfile string `toml:"default_profile"`

	// Profiles maps profile names to server settings.
	Profiles map[string]Profile `toml:"profiles"`

	// Store optionally overrides the remote dataset-store base URL.
	Store StoreConfig `toml:"store"`
}

// Profile holds the connection settings for one RefWire server.
type Profile struct {
	// Server is the base URL, e.g. "https://refwire.example.com".
	Server string `toml:"server"`
}

// StoreConfig holds remote dataset-store preferences.
type StoreConfig struct {
	// URL overrides the default public dataset-store base URL.
	URL string `toml:"url"`
}

// GetProfile returns the named profile. If name is empty the default profile
// is used; a lone configured profile acts as the default.
func (c *Config) GetProfile(name string) (string, Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		if len(c.Profiles) == 1 {
			for n, p := range c.Profiles {
				return n, p, nil
			}
		}
		return "", Profile{}, fmt.Errorf("no default profile configured")
	}
	if c.Profiles != nil {
		if p, ok := c.Profiles[name]; ok {
			return name, p, nil
		}
	}
	return "", Profile{}, fmt.Errorf("profile '%s' not found in config", name)
}

// ProfileNames returns the configured profile names, sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetProfile adds or replaces a profile. The first profile added becomes the
// default.
func (c *Config) SetProfile(name string, p Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = p
	if c.DefaultProfile == "" {
		c.DefaultProfile = name
	}
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// Dir returns the refwire config directory.
func Dir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "refwire")
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "refwire")
	}
	return "."
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// ResolveConfigPath resolves the effective config path from an optional
// override.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}
