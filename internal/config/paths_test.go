package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDataDirEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	_ = os.Setenv(EnvNespanHome, tmp)
	defer func() { _ = os.Unsetenv(EnvNespanHome) }()

	d, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir(): %v", err)
	}
	if d != tmp {
		t.Fatalf("expected %s got %s", tmp, d)
	}
}

func TestDBPathEnvOverride(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "custom.db")
	_ = os.Setenv(EnvNespanDB, tmp)
	defer func() { _ = os.Unsetenv(EnvNespanDB) }()

	p, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath(): %v", err)
	}
	if p != tmp {
		t.Fatalf("expected %s got %s", tmp, p)
	}
}

func TestEnsureDataDirCreatesDir(t *testing.T) {
	_ = os.Unsetenv(EnvNespanHome)
	tmp := t.TempDir()
	// fake home by setting HOME/USERPROFILE
	_ = os.Setenv("HOME", tmp)
	_ = os.Setenv("USERPROFILE", tmp)

	d, err := EnsureDataDir()
	if err != nil {
		t.Fatalf("EnsureDataDir(): %v", err)
	}
	if _, err := os.Stat(d); err != nil {
		t.Fatalf("expected dir %s to exist: %v", d, err)
	}
}

func TestSettingsFromReaderWithEnvOverride(t *testing.T) {
	r := strings.NewReader("DefaultLanguage = \"en\"\nRulesFile = \"~/rules.toml\"\n")
	cfg, err := SettingsFromReader(r)
	if err != nil {
		t.Fatalf("SettingsFromReader: %v", err)
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}

	_ = os.Setenv("NESPAN_DEFAULTLANGUAGE", "he")
	defer func() { _ = os.Unsetenv("NESPAN_DEFAULTLANGUAGE") }()
	cfg, err = SettingsFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("SettingsFromReader: %v", err)
	}
	if cfg.DefaultLanguage != "he" {
		t.Fatalf("env override not applied: %q", cfg.DefaultLanguage)
	}
}

func TestWriteAndLoadSettings(t *testing.T) {
	tmp := t.TempDir()
	_ = os.Setenv(EnvNespanHome, tmp)
	defer func() { _ = os.Unsetenv(EnvNespanHome) }()

	want := &Settings{DefaultLanguage: "en", SerializeWithText: true}
	if err := WriteSettings(want); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}
	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.DefaultLanguage != "en" || !got.SerializeWithText {
		t.Fatalf("unexpected settings: %+v", got)
	}
}
