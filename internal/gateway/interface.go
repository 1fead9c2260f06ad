package gateway

import "context"

// Gateway is the synchronous text-generation collaborator. It performs
// no retries of its own; fallback handling belongs entirely to the
// calling stage.
type Gateway interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ServiceError marks a failed or unusable generation call. Stages absorb
// it via their local fallback; it never propagates past them.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
