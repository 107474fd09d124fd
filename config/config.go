// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// ProviderName selects the chat backend.
type ProviderName string

const (
	ProviderRAG    ProviderName = "rag"
	ProviderGemini ProviderName = "gemini"
)

// Config holds all environment-driven settings. Flags may override
// individual fields after Load.
type Config struct {
	// Retrieval backend, e.g. "http://localhost:8000/api/chat".
	APIBaseURL string `env:"DOCCHAT_API_BASE_URL"`

	// Provider selection; empty means auto-detect from the fields above.
	Provider ProviderName `env:"DOCCHAT_PROVIDER"`

	// Direct Gemini fallback.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL"`

	// Conversation history entries sent with each request.
	HistoryLimit int `env:"DOCCHAT_HISTORY_LIMIT" envDefault:"6"`

	// Transcript file to resume from and save to.
	TranscriptPath string `env:"DOCCHAT_TRANSCRIPT"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
