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

// StateVersion is the current state file schema version.
const StateVersion = 1

// State represents mutable machine-local runtime state.
type State struct {
	Version       int    `toml:"version"`
	ActiveProfile string `toml:"active_profile,omitempty"`
}

// StatePath returns the state.toml path next to the config file.
func StatePath(configPath string) string {
	return filepath.Join(filepath.Dir(ResolveConfigPath(configPath)), "state.toml")
}

// LoadState loads state.toml from a specific path.
// Returns a default state when the file does not exist.
func LoadState(path string) (*State, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("state path is required")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &State{Version: StateVersion}, nil
	}

	var state State
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	if state.Version == 0 {
		state.Version = StateVersion
	}
	state.ActiveProfile = strings.TrimSpace(state.ActiveProfile)
	return &state, nil
}

// SaveState writes state.toml atomically.
func SaveState(path string, state *State) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("state path is required")
	}
	if state == nil {
		state = &State{}
	}

	normalized := *state
	if normalized.Version == 0 {
		normalized.Version = StateVersion
	}
	normalized.ActiveProfile = strings.TrimSpace(normalized.ActiveProfile)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalized); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}
	return nil
}
