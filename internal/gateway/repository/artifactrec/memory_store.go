package artifactrec

import (
	"context"
	"fmt"
	"sync"

	"chartisan/internal/types"
)

// MemoryStore is the in-process fallback used when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byMsg  map[int64]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, byMsg: make(map[int64]Record)}
}

func (s *MemoryStore) CreateFromResult(_ context.Context, messageID int64, res types.PipelineResult) (Record, error) {
	if s == nil {
		return Record{}, fmt.Errorf("store is nil")
	}
	if messageID == 0 {
		return Record{}, fmt.Errorf("message_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := fromResult(messageID, res)
	rec.ID = s.nextID
	s.nextID++
	s.byMsg[messageID] = rec
	return rec, nil
}

func (s *MemoryStore) GetByMessage(_ context.Context, messageID int64) (Record, error) {
	if s == nil {
		return Record{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byMsg[messageID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
