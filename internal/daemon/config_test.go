package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("AHORIFY_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User.ID != "default_user" {
		t.Errorf("user id: %q", cfg.User.ID)
	}
	if cfg.API.Port != 8421 {
		t.Errorf("port: %d", cfg.API.Port)
	}
	if cfg.Data.Dir == "" {
		t.Error("data dir must default to the home directory")
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("AHORIFY_HOME", home)

	cfg := DefaultConfig()
	cfg.User.ID = "ana"
	cfg.User.Currency = "MXN"
	cfg.API.Port = 9000
	cfg.Telemetry.Prometheus = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("config file: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.User.ID != "ana" || loaded.User.Currency != "MXN" {
		t.Errorf("user: %+v", loaded.User)
	}
	if loaded.API.Port != 9000 {
		t.Errorf("port: %d", loaded.API.Port)
	}
	if !loaded.Telemetry.Prometheus {
		t.Error("prometheus flag lost")
	}
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("AHORIFY_HOME", home)

	partial := []byte("[api]\nport = 9999\n")
	if err := os.WriteFile(filepath.Join(home, "config.toml"), partial, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("port: %d", cfg.API.Port)
	}
	if cfg.User.ID != "default_user" {
		t.Errorf("user id default lost: %q", cfg.User.ID)
	}
}
