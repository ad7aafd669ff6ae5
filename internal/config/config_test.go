package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigGetVaultPath(t *testing.T) {
	t.Run("named vault", func(t *testing.T) {
		cfg := &Config{
			Vaults: map[string]string{
				"work":     "/path/to/work",
				"personal": "/path/to/personal",
			},
		}

		path, err := cfg.GetVaultPath("work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/path/to/work" {
			t.Errorf("expected '/path/to/work', got %q", path)
		}
	})

	t.Run("default vault", func(t *testing.T) {
		cfg := &Config{
			DefaultVault: "personal",
			Vaults: map[string]string{
				"work":     "/path/to/work",
				"personal": "/path/to/personal",
			},
		}

		path, err := cfg.GetVaultPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/path/to/personal" {
			t.Errorf("expected '/path/to/personal', got %q", path)
		}
	})

	t.Run("home expansion", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		cfg := &Config{Vaults: map[string]string{"notes": "~/notes"}}

		path, err := cfg.GetVaultPath("notes")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != filepath.Join(home, "notes") {
			t.Errorf("expected home-relative path, got %q", path)
		}
	})

	t.Run("vault not found", func(t *testing.T) {
		cfg := &Config{
			Vaults: map[string]string{
				"work": "/path/to/work",
			},
		}

		_, err := cfg.GetVaultPath("nonexistent")
		if err == nil {
			t.Error("expected error for nonexistent vault")
		}
	})

	t.Run("no default configured", func(t *testing.T) {
		cfg := &Config{}

		_, err := cfg.GetVaultPath("")
		if err == nil || !strings.Contains(err.Error(), "no default vault") {
			t.Errorf("expected 'no default vault' error, got %v", err)
		}
	})
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "valid.toml")
		content := `default_vault = "work"
log_level = "debug"

[vaults]
work = "/path/to/work"

[ui]
accent = "#00AAFF"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DefaultVault != "work" {
			t.Errorf("DefaultVault = %q, want 'work'", cfg.DefaultVault)
		}
		if cfg.Vaults["work"] != "/path/to/work" {
			t.Errorf("Vaults[work] = %q", cfg.Vaults["work"])
		}
		if cfg.UI.Accent != "#00AAFF" {
			t.Errorf("UI.Accent = %q", cfg.UI.Accent)
		}
		if got := cfg.SlogLevel(slog.LevelWarn); got != slog.LevelDebug {
			t.Errorf("SlogLevel = %v, want debug", got)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := filepath.Join(dir, "level.toml")
		if err := os.WriteFile(path, []byte(`log_level = "loud"`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("invalid accent", func(t *testing.T) {
		path := filepath.Join(dir, "accent.toml")
		if err := os.WriteFile(path, []byte("[ui]\naccent = \"blue\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("default_vault = "), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultVault != "" || len(cfg.Vaults) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
	if got := cfg.SlogLevel(slog.LevelWarn); got != slog.LevelWarn {
		t.Errorf("SlogLevel = %v, want fallback", got)
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(EnvConfig, "/from/env.toml")

	if got := ResolveConfigPath("/explicit.toml"); got != "/explicit.toml" {
		t.Errorf("explicit path: got %q", got)
	}
	if got := ResolveConfigPath("  "); got != "/from/env.toml" {
		t.Errorf("env path: got %q", got)
	}

	t.Setenv(EnvConfig, "")
	if got := ResolveConfigPath(""); got != DefaultPath() {
		t.Errorf("default path: got %q", got)
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	created, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("default config should parse: %v", err)
	}
	if cfg.DefaultVault != "" {
		t.Errorf("default config should set nothing, got %+v", cfg)
	}

	created, err = CreateDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("second call should not overwrite")
	}
}
