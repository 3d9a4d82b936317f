package conversation

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("conversation not found")

// Conversation is one chat thread.
type Conversation struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one persisted turn.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	HasArtifact    bool      `json:"has_artifact"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store persists conversations and their messages.
type Store interface {
	CreateConversation(ctx context.Context, title string) (Conversation, error)
	GetConversation(ctx context.Context, id int64) (Conversation, error)
	AppendMessage(ctx context.Context, msg Message) (Message, error)
	ListMessages(ctx context.Context, conversationID int64) ([]Message, error)
}
