package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Count.Width != nil || cfg.Count.Default != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[count]
default = ["lines", "chars"]
width = 4
total = "never"
record = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Count.Default) != 2 || cfg.Count.Default[1] != "chars" {
		t.Fatalf("unexpected default %v", cfg.Count.Default)
	}
	if cfg.Count.Width == nil || *cfg.Count.Width != 4 {
		t.Fatalf("unexpected width %v", cfg.Count.Width)
	}
	if cfg.Count.Total == nil || *cfg.Count.Total != "never" {
		t.Fatalf("unexpected total %v", cfg.Count.Total)
	}
	if cfg.Count.Record == nil || !*cfg.Count.Record {
		t.Fatalf("expected record to be set")
	}
	if cfg.Count.Encoding != nil {
		t.Fatalf("expected encoding to be unset")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[count]\nwidht = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "gowc", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "gowc", "gowc.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
