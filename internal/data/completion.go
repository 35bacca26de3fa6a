package data

import (
	"context"

	"github.com/driftware/engagekit/internal/biz/repo"
	"github.com/driftware/engagekit/internal/infra/llm"
)

// completionRepo implements the completion capability over the LLM client
type completionRepo struct {
	client *llm.Client
}

// NewCompletionRepo creates a completion repository.
// Returns nil when client is nil so callers fall back to templates.
func NewCompletionRepo(client *llm.Client) repo.CompletionRepo {
	if client == nil {
		return nil
	}
	return &completionRepo{client: client}
}

// Complete delegates to the LLM client
func (r *completionRepo) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return r.client.Complete(ctx, prompt, temperature)
}
