package gateway

import (
	"fmt"

	"studyflow/internal/config"
	"studyflow/internal/logger"
)

// New creates a Gateway for the configured provider.
func New(cfg config.GenerationConfig, log logger.Logger) (Gateway, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("generation.api_keys is required for provider %s", cfg.Provider)
	}

	switch cfg.Provider {
	case "gemini":
		return newGemini(cfg.APIKeys, cfg.Model, log), nil
	case "openai":
		return newOpenAI(cfg.APIKeys[0], cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
}
