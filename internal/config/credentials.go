package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coretravis/refwire-cli/internal/atomicfile"
)

// Credentials stores API keys per profile, kept in a separate file from
// config.toml so the config can be shared or checked in without leaking
// secrets. The file is written with 0600 permissions.
type Credentials struct {
	Keys map[string]string `toml:"keys"`
}

// CredentialsPath returns the credentials.toml path next to the config file.
func CredentialsPath(configPath string) string {
	return filepath.Join(filepath.Dir(ResolveConfigPath(configPath)), "credentials.toml")
}

// LoadCredentials loads credentials from a specific path.
// Returns an empty set when the file does not exist.
func LoadCredentials(path string) (*Credentials, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Credentials{Keys: make(map[string]string)}, nil
	}
	var creds Credentials
	if _, err := toml.DecodeFile(path, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}
	if creds.Keys == nil {
		creds.Keys = make(map[string]string)
	}
	return &creds, nil
}

// Key returns the stored API key for a profile.
func (c *Credentials) Key(profile string) (string, bool) {
	key, ok := c.Keys[profile]
	return key, ok && key != ""
}

// SetKey stores the API key for a profile.
func (c *Credentials) SetKey(profile, key string) {
	if c.Keys == nil {
		c.Keys = make(map[string]string)
	}
	c.Keys[profile] = key
}

// RemoveKey deletes the stored key for a profile.
func (c *Credentials) RemoveKey(profile string) {
	delete(c.Keys, profile)
}

// SaveCredentials writes credentials atomically with owner-only permissions.
func SaveCredentials(path string, creds *Credentials) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("credentials path is required")
	}
	if creds == nil {
		creds = &Credentials{}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials %s: %w", path, err)
	}
	return nil
}
