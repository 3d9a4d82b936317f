package artifactrec

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"chartisan/internal/types"
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
CREATE TABLE IF NOT EXISTS artifacts (
    id BIGSERIAL PRIMARY KEY,
    message_id BIGINT NOT NULL UNIQUE,
    component_type TEXT NOT NULL,
    sub_type TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    data JSONB NOT NULL DEFAULT '{}',
    style JSONB NOT NULL DEFAULT '{}',
    configuration JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) CreateFromResult(ctx context.Context, messageID int64, res types.PipelineResult) (Record, error) {
	if s == nil {
		return Record{}, fmt.Errorf("store is nil")
	}
	if messageID == 0 {
		return Record{}, fmt.Errorf("message_id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return Record{}, err
	}
	rec := fromResult(messageID, res)
	err := s.db.QueryRowContext(ctx, `
INSERT INTO artifacts (message_id, component_type, sub_type, title, description, data, style, configuration, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		rec.MessageID, rec.ComponentType, rec.SubType, rec.Title, rec.Description,
		[]byte(rec.Data), []byte(rec.Style), []byte(rec.Configuration), rec.CreatedAt,
	).Scan(&rec.ID)
	return rec, err
}

func (s *PostgresStore) GetByMessage(ctx context.Context, messageID int64) (Record, error) {
	if s == nil {
		return Record{}, fmt.Errorf("store is nil")
	}
	if err := s.ensureSchema(); err != nil {
		return Record{}, err
	}
	var rec Record
	err := s.db.QueryRowContext(ctx, `
SELECT id, message_id, component_type, sub_type, title, description, data, style, configuration, created_at
FROM artifacts WHERE message_id=$1`, messageID,
	).Scan(&rec.ID, &rec.MessageID, &rec.ComponentType, &rec.SubType, &rec.Title,
		&rec.Description, &rec.Data, &rec.Style, &rec.Configuration, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	return rec, err
}
