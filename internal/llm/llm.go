package llm

import (
	"context"
)

// Client is the completion-service collaborator. Output is plain text that
// may or may not contain embedded JSON; callers extract what they need.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
	Close() error
}
