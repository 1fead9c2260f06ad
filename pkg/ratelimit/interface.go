package ratelimit

import "context"

// Limiter defines the interface for pacing successive external calls
type Limiter interface {
	Wait(ctx context.Context) error
}
