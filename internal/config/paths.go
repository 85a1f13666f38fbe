package config

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// Environment overrides for storage locations.
const (
	EnvNespanHome = "NESPAN_HOME"
	EnvNespanDB   = "NESPAN_DB"
)

// DataDir returns the directory used to store nespan data. NESPAN_HOME
// overrides the default dot-directory in the user's home.
func DataDir() (string, error) {
	if d := os.Getenv(EnvNespanHome); d != "" {
		return homedir.Expand(d)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nespan"), nil
}

// EnsureDataDir returns the data directory, creating it if needed.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// DBPath returns the full path to the SQLite database file. NESPAN_DB
// overrides the default location inside the data dir.
func DBPath() (string, error) {
	if p := os.Getenv(EnvNespanDB); p != "" {
		return homedir.Expand(p)
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "nespan.db"), nil
}

// FilePath returns the path of the TOML settings file inside the data dir.
func FilePath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.toml"), nil
}
