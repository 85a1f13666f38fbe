// Package config resolves nespan's storage locations and user settings.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Settings holds user-tunable behavior persisted in config.toml. Any field
// can be overridden by an environment variable with the NESPAN prefix, e.g.
// NESPAN_DEFAULTLANGUAGE or NESPAN_RULESFILE.
type Settings struct {
	// DefaultLanguage is the default language code stored on new documents.
	DefaultLanguage string
	// RulesFile is the default annotation rules file used when `annotate`
	// is invoked without --rules. Supports ~ expansion.
	RulesFile string
	// SerializeWithText includes covered text when exporting span records.
	SerializeWithText bool
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultLanguage:   "he",
		SerializeWithText: false,
	}
}

// LoadSettings reads config.toml from the data dir (if present) and applies
// NESPAN_* environment overrides. A missing file is not an error.
func LoadSettings() (*Settings, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultSettings()
			if err := envconfig.Process("NESPAN", cfg); err != nil {
				return nil, fmt.Errorf("processing env overrides: %w", err)
			}
			return cfg, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return SettingsFromReader(f)
}

// SettingsFromReader decodes settings from r on top of the defaults and
// applies environment overrides.
func SettingsFromReader(r io.Reader) (*Settings, error) {
	cfg := DefaultSettings()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := envconfig.Process("NESPAN", cfg); err != nil {
		return nil, fmt.Errorf("processing env overrides: %w", err)
	}
	return cfg, nil
}

// SettingsBytes encodes cfg as TOML, suitable for writing config.toml.
func SettingsBytes(cfg *Settings) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSettings persists cfg to config.toml in the data dir.
func WriteSettings(cfg *Settings) error {
	if _, err := EnsureDataDir(); err != nil {
		return err
	}
	path, err := FilePath()
	if err != nil {
		return err
	}
	b, err := SettingsBytes(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
