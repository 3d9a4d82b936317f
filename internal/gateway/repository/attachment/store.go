package attachment

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("attachment not found")

// Store holds user-uploaded files referenced by chat prompts. Objects are
// keyed per conversation.
type Store interface {
	Put(ctx context.Context, conversationID, name string, contentType string, content []byte) error
	Get(ctx context.Context, conversationID, name string) ([]byte, error)
	List(ctx context.Context, conversationID string) ([]string, error)
	GetURL(ctx context.Context, conversationID, name string) (string, error)
}
