package conversation

import (
	"context"
	"testing"
)

func TestMemoryStore_ConversationLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "Revenue questions")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if conv.ID == 0 || conv.Title != "Revenue questions" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}

	got, err := s.GetConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if got.Title != conv.Title {
		t.Fatalf("title=%q", got.Title)
	}

	if _, err := s.GetConversation(ctx, 999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_RejectsEmptyTitle(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.CreateConversation(context.Background(), "   "); err == nil {
		t.Fatalf("empty title must be rejected")
	}
}

func TestMemoryStore_MessagesOrderedAndCopied(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	conv, _ := s.CreateConversation(ctx, "t")

	for _, content := range []string{"first", "second", "third"} {
		if _, err := s.AppendMessage(ctx, Message{ConversationID: conv.ID, Role: "user", Content: content}); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	msgs, err := s.ListMessages(ctx, conv.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 3 || msgs[0].Content != "first" || msgs[2].Content != "third" {
		t.Fatalf("messages: %+v", msgs)
	}
	if msgs[0].ID == msgs[1].ID {
		t.Fatalf("ids must be unique")
	}

	// Mutating the returned slice must not leak into the store.
	msgs[0].Content = "mutated"
	again, _ := s.ListMessages(ctx, conv.ID)
	if again[0].Content != "first" {
		t.Fatalf("store leaked internal slice")
	}
}

func TestMemoryStore_AppendToUnknownConversation(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.AppendMessage(context.Background(), Message{ConversationID: 42, Role: "user", Content: "x"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
