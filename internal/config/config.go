// Package config handles global and per-vault vaudit configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aidanlsb/vaudit/internal/atomicfile"
)

// Environment variables consulted during resolution.
const (
	EnvConfig = "VAUDIT_CONFIG"
	EnvVault  = "VAUDIT_VAULT"
)

// Log levels accepted by log_level.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

var accentPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Config represents the global vaudit configuration.
type Config struct {
	// DefaultVault is the name of the default vault (from Vaults map).
	DefaultVault string `toml:"default_vault"`

	// Vaults is a map of vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	// LogLevel sets the stderr log level: debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.UI,
		validation.Field(&c.UI.Accent, validation.Match(accentPattern)),
	)
}

// SlogLevel returns the configured log level, or fallback when unset.
func (c *Config) SlogLevel(fallback slog.Level) slog.Level {
	var lvl slog.Level
	if c.LogLevel == "" || lvl.UnmarshalText([]byte(c.LogLevel)) != nil {
		return fallback
	}
	return lvl
}

// GetVaultPath returns the path for a named vault.
// If name is empty, returns the default vault path.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}

	if path, ok := c.Vaults[name]; ok {
		return expandHome(path), nil
	}
	return "", fmt.Errorf("vault '%s' not found in config", name)
}

// ListVaults returns all configured vaults with their paths.
func (c *Config) ListVaults() map[string]string {
	result := make(map[string]string, len(c.Vaults))
	for name, path := range c.Vaults {
		result[name] = expandHome(path)
	}
	return result
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// Load loads the configuration from path.
// Returns a default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("no global config", "path", path)
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads and validates the configuration at a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path: an explicit path
// wins, then $VAUDIT_CONFIG, then DefaultPath.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return env
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/vaudit/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "vaudit", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "vaudit", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# vaudit configuration

# Default vault name (must exist in [vaults] below)
# default_vault = "personal"

# Named vaults
# [vaults]
# personal = "~/notes"
# work = "/path/to/work/notes"

# Log level on stderr: debug, info, warn, error
# log_level = "warn"

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault writes a commented default config to path unless a file
// already exists there. It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
