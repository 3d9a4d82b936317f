package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback used when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	nextConv int64
	nextMsg  int64
	convs    map[int64]Conversation
	messages map[int64][]Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextConv: 1,
		nextMsg:  1,
		convs:    make(map[int64]Conversation),
		messages: make(map[int64][]Message),
	}
}

func (s *MemoryStore) CreateConversation(_ context.Context, title string) (Conversation, error) {
	if s == nil {
		return Conversation{}, fmt.Errorf("store is nil")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Conversation{}, fmt.Errorf("title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := Conversation{ID: s.nextConv, Title: title, CreatedAt: time.Now()}
	s.nextConv++
	s.convs[conv.ID] = conv
	return conv, nil
}

func (s *MemoryStore) GetConversation(_ context.Context, id int64) (Conversation, error) {
	if s == nil {
		return Conversation{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[id]
	if !ok {
		return Conversation{}, ErrNotFound
	}
	return conv, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, msg Message) (Message, error) {
	if s == nil {
		return Message{}, fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(msg.Role) == "" {
		return Message{}, fmt.Errorf("role is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[msg.ConversationID]; !ok {
		return Message{}, ErrNotFound
	}
	msg.ID = s.nextMsg
	s.nextMsg++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	return msg, nil
}

func (s *MemoryStore) ListMessages(_ context.Context, conversationID int64) ([]Message, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.convs[conversationID]; !ok {
		return nil, ErrNotFound
	}
	src := s.messages[conversationID]
	out := make([]Message, len(src))
	copy(out, src)
	return out, nil
}
