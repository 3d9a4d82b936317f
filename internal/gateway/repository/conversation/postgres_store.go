package conversation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS conversations (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS messages (
    id BIGSERIAL PRIMARY KEY,
    conversation_id BIGINT NOT NULL REFERENCES conversations(id),
    role TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    has_artifact BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) CreateConversation(ctx context.Context, title string) (Conversation, error) {
	if s == nil {
		return Conversation{}, fmt.Errorf("store is nil")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Conversation{}, fmt.Errorf("title is required")
	}
	if err := s.ensureSchema(); err != nil {
		return Conversation{}, err
	}
	conv := Conversation{Title: title, CreatedAt: time.Now()}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO conversations (title, created_at) VALUES ($1, $2) RETURNING id`,
		conv.Title, conv.CreatedAt,
	).Scan(&conv.ID)
	return conv, err
}

func (s *PostgresStore) GetConversation(ctx context.Context, id int64) (Conversation, error) {
	if s == nil {
		return Conversation{}, fmt.Errorf("store is nil")
	}
	if err := s.ensureSchema(); err != nil {
		return Conversation{}, err
	}
	var conv Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at FROM conversations WHERE id=$1`, id,
	).Scan(&conv.ID, &conv.Title, &conv.CreatedAt)
	if err == sql.ErrNoRows {
		return Conversation{}, ErrNotFound
	}
	return conv, err
}

func (s *PostgresStore) AppendMessage(ctx context.Context, msg Message) (Message, error) {
	if s == nil {
		return Message{}, fmt.Errorf("store is nil")
	}
	if msg.ConversationID == 0 {
		return Message{}, fmt.Errorf("conversation_id is required")
	}
	if strings.TrimSpace(msg.Role) == "" {
		return Message{}, fmt.Errorf("role is required")
	}
	if err := s.ensureSchema(); err != nil {
		return Message{}, err
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO messages (conversation_id, role, content, has_artifact, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		msg.ConversationID, msg.Role, msg.Content, msg.HasArtifact, msg.CreatedAt,
	).Scan(&msg.ID)
	return msg, err
}

func (s *PostgresStore) ListMessages(ctx context.Context, conversationID int64) ([]Message, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if conversationID == 0 {
		return nil, fmt.Errorf("conversation_id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, conversation_id, role, content, has_artifact, created_at
FROM messages WHERE conversation_id=$1 ORDER BY id`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.HasArtifact, &m.CreatedAt); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
