package repo

import "context"

// CompletionRepo is the pluggable text-generation capability.
// It may fail; callers fall back to templates and never propagate the error.
type CompletionRepo interface {
	// Complete sends a prompt and returns the raw model output
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}
