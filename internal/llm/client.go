// Package llm wraps the language-model endpoint. Model output is
// untrusted text; callers must validate before acting on it.
package llm

import "context"

// Client generates text for a prompt. Implementations must honor ctx
// cancellation and carry their own request timeout.
type Client interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
