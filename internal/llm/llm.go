// Package llm abstracts the language-model provider behind a small
// completion interface so the core packages can be tested with stubs.
package llm

import (
	"context"
)

// CompletionRequest describes one chat-style completion exchange.
// Assistant, when set, is a primer the model continues from; it is how the
// classifier pins the shape of the reply.
type CompletionRequest struct {
	System      string
	User        string
	Assistant   string
	Temperature float32
	MaxTokens   int32
}

// Provider produces free-text completions. Implementations call over the
// network and must be treated as unreliable and latency-bearing: callers
// pass a context and get either the reply text or an error, never both.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
