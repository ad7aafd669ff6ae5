package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/vaudit/internal/check"
)

// VaultConfigFile is the per-vault configuration file name.
const VaultConfigFile = "vaudit.yaml"

// VaultConfig represents vault-level configuration from vaudit.yaml.
// Unset fields fall back to the check package defaults.
type VaultConfig struct {
	// RootNotes are the vault entry points. They are never orphans and need
	// no parent link.
	RootNotes []string `yaml:"root_notes,omitempty"`

	// Exclude holds extra glob patterns added after the built-in and
	// ignore-file patterns.
	Exclude []string `yaml:"exclude,omitempty"`

	// Hubs overrides the hub classification rules. Omitted keys keep
	// their defaults.
	Hubs *HubsConfig `yaml:"hubs,omitempty"`

	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`

	// InProgressDir is the relative-path prefix of work in progress.
	InProgressDir string `yaml:"in_progress_dir,omitempty"`

	// SkipDirs are relative-path substrings skipped by staleness scoring.
	SkipDirs []string `yaml:"skip_dirs,omitempty"`
}

// HubsConfig mirrors check.HubRules with optional fields.
type HubsConfig struct {
	Marker        *string `yaml:"marker,omitempty"`
	Suffix        *string `yaml:"suffix,omitempty"`
	Directory     *string `yaml:"directory,omitempty"`
	MembershipKey *string `yaml:"membership_key,omitempty"`
	Container     *string `yaml:"container,omitempty"`
}

// ThresholdsConfig holds the numeric analysis thresholds. Zero means default.
type ThresholdsConfig struct {
	Bloat      int `yaml:"bloat,omitempty"`
	StaleDays  int `yaml:"stale_days,omitempty"`
	StaleScore int `yaml:"stale_score,omitempty"`
	Squeeze    int `yaml:"squeeze,omitempty"`
}

// Validate validates the vault configuration.
func (vc *VaultConfig) Validate() error {
	if err := validation.ValidateStruct(&vc.Thresholds,
		validation.Field(&vc.Thresholds.Bloat, validation.Min(0)),
		validation.Field(&vc.Thresholds.StaleDays, validation.Min(0)),
		validation.Field(&vc.Thresholds.StaleScore, validation.Min(0), validation.Max(100)),
		validation.Field(&vc.Thresholds.Squeeze, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if vc.Hubs != nil {
		if err := validation.ValidateStruct(vc.Hubs,
			validation.Field(&vc.Hubs.Container, validation.NilOrNotEmpty),
		); err != nil {
			return fmt.Errorf("hubs: %w", err)
		}
	}
	return validation.ValidateStruct(vc,
		validation.Field(&vc.RootNotes, validation.Each(validation.Required)),
		validation.Field(&vc.Exclude, validation.Each(validation.Required)),
		validation.Field(&vc.SkipDirs, validation.Each(validation.Required)),
	)
}

// DefaultVaultConfig returns the default vault configuration.
func DefaultVaultConfig() *VaultConfig {
	return &VaultConfig{}
}

// LoadVaultConfig loads vault configuration from vaudit.yaml.
// Returns default config if file doesn't exist.
func LoadVaultConfig(vaultPath string) (*VaultConfig, error) {
	configPath := filepath.Join(vaultPath, VaultConfigFile)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		slog.Debug("no vault config", "path", configPath)
		return DefaultVaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault config %s: %w", configPath, err)
	}

	var config VaultConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse vault config %s: %w", configPath, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vault config %s: %w", configPath, err)
	}
	return &config, nil
}

// Options returns the analysis options this configuration describes.
func (vc *VaultConfig) Options() check.Options {
	opts := check.DefaultOptions()

	if len(vc.RootNotes) > 0 {
		opts.RootNotes = append([]string(nil), vc.RootNotes...)
	}
	if vc.Hubs != nil {
		override(&opts.Hubs.Marker, vc.Hubs.Marker)
		override(&opts.Hubs.Suffix, vc.Hubs.Suffix)
		override(&opts.Hubs.Directory, vc.Hubs.Directory)
		override(&opts.Hubs.MembershipKey, vc.Hubs.MembershipKey)
		override(&opts.Hubs.Container, vc.Hubs.Container)
	}

	t := vc.Thresholds
	if t.Bloat > 0 {
		opts.BloatThreshold = t.Bloat
	}
	if t.StaleDays > 0 {
		opts.StaleDays = t.StaleDays
	}
	if t.StaleScore > 0 {
		opts.StaleScore = t.StaleScore
	}
	if t.Squeeze > 0 {
		opts.SqueezeThreshold = t.Squeeze
	}

	if vc.InProgressDir != "" {
		opts.InProgressDir = vc.InProgressDir
	}
	if len(vc.SkipDirs) > 0 {
		opts.SkipMarkers = append([]string(nil), vc.SkipDirs...)
	}
	return opts
}

func override(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
