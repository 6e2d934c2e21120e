package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings read from the process environment.
type Env struct {
	APIKey       string `env:"OPENAI_API_KEY"`
	AdvisorURL   string `env:"TUIMOLE_ADVISOR_URL"`
	AdvisorModel string `env:"TUIMOLE_ADVISOR_MODEL"`
	Debug        bool   `env:"TUIMOLE_DEBUG"`
}

// LoadEnv loads the given dotenv files, if present, and parses the
// environment. Variables already set take precedence over file values.
func LoadEnv(files ...string) (Env, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
