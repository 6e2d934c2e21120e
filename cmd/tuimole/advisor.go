package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/tuimole/internal/config"
	"github.com/verte-zerg/tuimole/internal/feedback"
	"github.com/verte-zerg/tuimole/internal/game"
	"github.com/verte-zerg/tuimole/internal/model"
)

const (
	providerOpenAI    = "openai"
	providerHeuristic = "heuristic"
	providerOff       = "off"

	defaultModel       = feedback.DefaultModel
	defaultTemperature = feedback.DefaultTemperature
)

// keySource is the part of the keyring the play command reads.
type keySource interface {
	APIKey() (string, error)
}

// resolveAPIKey prefers the environment over the keyring and reports where
// the key came from.
func resolveAPIKey(env config.Env, keys keySource) (string, string) {
	if v := strings.TrimSpace(env.APIKey); v != "" {
		return v, "environment"
	}
	if keys == nil {
		return "", ""
	}
	v, err := keys.APIKey()
	if err != nil {
		return "", ""
	}
	return v, "keyring"
}

// buildAdvisor returns the advisor for cfg and the provider name stored with
// each round. A nil advisor disables advisor cycles.
func buildAdvisor(cfg model.AdvisorConfig, apiKey string) (*game.Advisor, string, error) {
	var provider game.Provider
	switch cfg.Provider {
	case providerOff:
		return nil, providerOff, nil
	case providerHeuristic:
		provider = feedback.Heuristic{}
	case providerOpenAI:
		p, err := feedback.NewOpenAI(feedback.OpenAIConfig{
			APIKey:      apiKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: &cfg.Temperature,
		})
		if errors.Is(err, feedback.ErrNoCredential) {
			logErrln("No advisor API key found; run `tuimole key set` or set OPENAI_API_KEY. Using the heuristic advisor.")
			return game.NewAdvisor(feedback.Heuristic{}, cfg.Timeout), providerHeuristic, nil
		}
		if err != nil {
			return nil, "", err
		}
		provider = p
	default:
		return nil, "", fmt.Errorf("unknown advisor %q", cfg.Provider)
	}
	provider = feedback.NewLimited(provider, cfg.MinInterval)
	return game.NewAdvisor(provider, cfg.Timeout), cfg.Provider, nil
}
