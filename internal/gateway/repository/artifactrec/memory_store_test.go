package artifactrec

import (
	"context"
	"encoding/json"
	"testing"

	"chartisan/internal/types"
)

func resultFixture() types.PipelineResult {
	return types.PipelineResult{
		HasArtifact:   true,
		ComponentType: "chart",
		SubType:       "bar",
		Data:          map[string]any{"labels": []any{"Jan"}},
		Style:         map[string]any{"width": "800px"},
		Configuration: map[string]any{"legend": map[string]any{"position": "bottom"}},
		Metadata:      types.ResultMetadata{Title: "Monthly Users", Description: "Users per month"},
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.CreateFromResult(ctx, 5, resultFixture())
	if err != nil {
		t.Fatalf("CreateFromResult: %v", err)
	}
	if rec.ID == 0 || rec.MessageID != 5 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ComponentType != "chart" || rec.SubType != "bar" {
		t.Fatalf("identity: %s/%s", rec.ComponentType, rec.SubType)
	}
	if rec.Title != "Monthly Users" {
		t.Fatalf("title=%q", rec.Title)
	}

	var data map[string]any
	if err := json.Unmarshal(rec.Data, &data); err != nil {
		t.Fatalf("data is not valid JSON: %v", err)
	}
	if _, ok := data["labels"]; !ok {
		t.Fatalf("data lost labels: %s", rec.Data)
	}

	got, err := s.GetByMessage(ctx, 5)
	if err != nil {
		t.Fatalf("GetByMessage: %v", err)
	}
	if got.ID != rec.ID {
		t.Fatalf("ids differ: %d vs %d", got.ID, rec.ID)
	}
}

func TestMemoryStore_GetUnknownMessage(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.GetByMessage(context.Background(), 9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_RejectsZeroMessageID(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.CreateFromResult(context.Background(), 0, resultFixture()); err == nil {
		t.Fatalf("zero message id must be rejected")
	}
}

func TestFromResult_NilMapsBecomeEmptyObjects(t *testing.T) {
	rec := fromResult(1, types.PipelineResult{HasArtifact: true, ComponentType: "table"})
	for name, raw := range map[string]json.RawMessage{"data": rec.Data, "style": rec.Style, "configuration": rec.Configuration} {
		if string(raw) != "{}" {
			t.Fatalf("%s should default to {}, got %s", name, raw)
		}
	}
}
