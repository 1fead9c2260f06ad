package assembler

import (
	"studyflow/internal/gateway"
	"studyflow/internal/logger"
	"studyflow/pkg/ratelimit"
)

type implAssembler struct {
	gateway     gateway.Gateway
	limiter     ratelimit.Limiter
	logger      logger.Logger
	tokenBudget int
}

// New creates an Assembler sharing the pipeline's gateway and limiter.
func New(gw gateway.Gateway, limiter ratelimit.Limiter, log logger.Logger, tokenBudget int) Assembler {
	return &implAssembler{
		gateway:     gw,
		limiter:     limiter,
		logger:      log,
		tokenBudget: tokenBudget,
	}
}
