package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{}
	cfg.SetProfile("prod", Profile{Server: "https://refwire.example.com"})
	cfg.SetProfile("staging", Profile{Server: "https://staging.example.com"})

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.DefaultProfile != "prod" {
		t.Errorf("DefaultProfile = %q, want prod (first added)", loaded.DefaultProfile)
	}

	name, p, err := loaded.GetProfile("")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if name != "prod" || p.Server != "https://refwire.example.com" {
		t.Errorf("default profile = %s %+v", name, p)
	}

	if _, _, err := loaded.GetProfile("missing"); err == nil {
		t.Error("unknown profile should fail")
	}

	want := []string{"prod", "staging"}
	got := loaded.ProfileNames()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ProfileNames = %v, want %v", got, want)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom on missing file should default, got: %v", err)
	}
	if len(cfg.Profiles) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSingleProfileActsAsDefault(t *testing.T) {
	cfg := &Config{Profiles: map[string]Profile{
		"only": {Server: "https://one.example.com"},
	}}

	name, p, err := cfg.GetProfile("")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if name != "only" || p.Server != "https://one.example.com" {
		t.Errorf("got %s %+v", name, p)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState on missing file failed: %v", err)
	}
	if state.ActiveProfile != "" || state.Version != StateVersion {
		t.Errorf("default state = %+v", state)
	}

	state.ActiveProfile = "staging"
	if err := SaveState(path, state); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if loaded.ActiveProfile != "staging" {
		t.Errorf("ActiveProfile = %q", loaded.ActiveProfile)
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")

	creds, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials on missing file failed: %v", err)
	}
	if _, ok := creds.Key("prod"); ok {
		t.Error("empty credentials should have no keys")
	}

	creds.SetKey("prod", "rw_live_abc")
	if err := SaveCredentials(path, creds); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat credentials: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("credentials file mode = %o, want 0600", perm)
		}
	}

	loaded, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	key, ok := loaded.Key("prod")
	if !ok || key != "rw_live_abc" {
		t.Errorf("Key = (%q, %v)", key, ok)
	}

	loaded.RemoveKey("prod")
	if _, ok := loaded.Key("prod"); ok {
		t.Error("RemoveKey did not remove the key")
	}
}
