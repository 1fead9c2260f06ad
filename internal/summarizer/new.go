package summarizer

import (
	"studyflow/internal/gateway"
	"studyflow/internal/logger"
	"studyflow/pkg/ratelimit"
)

type implSummarizer struct {
	gateway     gateway.Gateway
	limiter     ratelimit.Limiter
	logger      logger.Logger
	tokenBudget int
}

// New creates a Summarizer. The limiter paces consecutive calls; the
// token budget caps how much of a chunk is sent per request.
func New(gw gateway.Gateway, limiter ratelimit.Limiter, log logger.Logger, tokenBudget int) Summarizer {
	return &implSummarizer{
		gateway:     gw,
		limiter:     limiter,
		logger:      log,
		tokenBudget: tokenBudget,
	}
}
