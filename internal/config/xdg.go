package config

import (
	"os"
	"path/filepath"
)

const appDir = "tuimole"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "tuimole.db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultDebugLogPath returns where the debug log is written.
func DefaultDebugLogPath() string {
	return filepath.Join(XDGDataHome(), appDir, "debug.log")
}

// DefaultSecretsPath returns the key file used when no OS keyring exists.
func DefaultSecretsPath() string {
	return filepath.Join(XDGDataHome(), appDir, "secrets.json")
}
