package stage

import (
	"context"
	"errors"

	"studyflow/internal/gateway"
	"studyflow/internal/logger"
)

// Result carries a stage output together with whether it was degraded
// to the local fallback, and why. Degradation is a visible fact the
// orchestrator can report, not something to dig out of logs.
type Result[T any] struct {
	Output   T
	Degraded bool
	Reason   string
}

// Run is the fallback policy shared by every generation stage: call the
// gateway, parse the response, and on a service failure or unparsable
// output substitute the deterministic local fallback. Generation
// failures never propagate past this boundary; only context
// cancellation does.
func Run[T any](ctx context.Context, gw gateway.Gateway, log logger.Logger, meter *Meter,
	systemPrompt, userPrompt string, parse func(string) (T, error), fallback func() T) (Result[T], error) {

	raw, err := gw.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result[T]{}, err
		}
		log.Warn(ctx, "Generation call failed, using local fallback: %v", err)
		return Result[T]{Output: fallback(), Degraded: true, Reason: err.Error()}, nil
	}

	meter.record(systemPrompt+userPrompt, raw)

	out, perr := parse(raw)
	if perr != nil {
		log.Warn(ctx, "Unparsable generation output, using local fallback: %v", perr)
		return Result[T]{Output: fallback(), Degraded: true, Reason: "unparsable output: " + perr.Error()}, nil
	}

	return Result[T]{Output: out}, nil
}
