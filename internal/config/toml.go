// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game    GameConfig    `toml:"game"`
	Advisor AdvisorConfig `toml:"advisor"`
}

// GameConfig maps round settings.
type GameConfig struct {
	Duration      *int      `toml:"duration"`
	Holes         *int      `toml:"holes"`
	AdvisorPeriod *Duration `toml:"advisor-period"`
}

// AdvisorConfig maps feedback provider settings.
type AdvisorConfig struct {
	Provider    *string   `toml:"provider"`
	Model       *string   `toml:"model"`
	BaseURL     *string   `toml:"base-url"`
	Timeout     *Duration `toml:"timeout"`
	Temperature *float64  `toml:"temperature"`
	MinInterval *Duration `toml:"min-interval"`
}

// Duration decodes TOML strings such as "3s" or "1500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
