package attachment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is the in-process fallback used when object storage is not
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, conversationID, name, _ string, content []byte) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	conversationID = strings.TrimSpace(conversationID)
	name = strings.TrimSpace(name)
	if conversationID == "" {
		return fmt.Errorf("conversation_id is required")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	buf := make([]byte, len(content))
	copy(buf, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey(conversationID, name)] = buf
	return nil
}

func (s *MemoryStore) Get(_ context.Context, conversationID, name string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.objects[objectKey(conversationID, name)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (s *MemoryStore) List(_ context.Context, conversationID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}
	prefix := conversationID + "/"

	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, 16)
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			names = append(names, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) GetURL(_ context.Context, conversationID, name string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[objectKey(conversationID, name)]; !ok {
		return "", ErrNotFound
	}
	return "memory://" + objectKey(conversationID, name), nil
}
