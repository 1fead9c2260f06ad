package gateway

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"studyflow/internal/logger"
)

type implGemini struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// newGemini creates a Gateway that rotates through the supplied Gemini
// API keys on 429 / quota errors.
func newGemini(apiKeys []string, model string, log logger.Logger) Gateway {
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (g *implGemini) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		cfg := &genai.GenerateContentConfig{}
		if systemPrompt != "" {
			cfg.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			}
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), cfg)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", &ServiceError{Message: "generate content", Err: err}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", &ServiceError{Message: "empty response from Gemini"}
	}

	return "", &ServiceError{Message: "all API keys exhausted", Err: lastErr}
}

func (g *implGemini) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
