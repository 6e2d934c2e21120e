package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Game.Holes != nil || cfg.Advisor.Provider != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[game]
duration = 45
holes = 4
advisor-period = "4s"

[advisor]
provider = "heuristic"
model = "gpt-4o"
timeout = "1500ms"
temperature = 0.2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Duration == nil || *cfg.Game.Duration != 45 {
		t.Fatalf("expected duration 45, got %v", cfg.Game.Duration)
	}
	if cfg.Game.Holes == nil || *cfg.Game.Holes != 4 {
		t.Fatalf("expected holes 4, got %v", cfg.Game.Holes)
	}
	if cfg.Game.AdvisorPeriod == nil || cfg.Game.AdvisorPeriod.Duration != 4*time.Second {
		t.Fatalf("expected advisor period 4s, got %v", cfg.Game.AdvisorPeriod)
	}
	if cfg.Advisor.Provider == nil || *cfg.Advisor.Provider != "heuristic" {
		t.Fatalf("expected heuristic provider, got %v", cfg.Advisor.Provider)
	}
	if cfg.Advisor.Timeout == nil || cfg.Advisor.Timeout.Duration != 1500*time.Millisecond {
		t.Fatalf("expected timeout 1.5s, got %v", cfg.Advisor.Timeout)
	}
	if cfg.Advisor.BaseURL != nil {
		t.Fatalf("expected unset base url, got %v", *cfg.Advisor.BaseURL)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"duration": "[advisor]\ntimeout = \"soon\"\n",
		"unknown":  "[game]\nspeed = 3\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	cfgHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("XDG_DATA_HOME", dataHome)

	if got := DefaultConfigPath(); got != filepath.Join(cfgHome, "tuimole", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	for _, p := range []string{DefaultDBPath(), DefaultDebugLogPath(), DefaultSecretsPath()} {
		if !strings.HasPrefix(p, filepath.Join(dataHome, "tuimole")) {
			t.Fatalf("expected %s under data home", p)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotenv, []byte("TUIMOLE_ADVISOR_MODEL=from-file\nOPENAI_API_KEY=file-key\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("OPENAI_API_KEY", "shell-key")
	t.Setenv("TUIMOLE_DEBUG", "true")
	t.Setenv("TUIMOLE_ADVISOR_MODEL", "")
	if err := os.Unsetenv("TUIMOLE_ADVISOR_MODEL"); err != nil {
		t.Fatalf("unset: %v", err)
	}

	got, err := LoadEnv(dotenv, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if got.APIKey != "shell-key" {
		t.Fatalf("expected shell value to win, got %q", got.APIKey)
	}
	if got.AdvisorModel != "from-file" {
		t.Fatalf("expected dotenv value, got %q", got.AdvisorModel)
	}
	if !got.Debug {
		t.Fatalf("expected debug enabled")
	}
}
