package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"chartisan/internal/types"
)

func TestFormatHistory_Empty(t *testing.T) {
	if got := formatHistory(nil); got != "No prior conversation" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatHistory_RoleLines(t *testing.T) {
	got := formatHistory([]types.Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Content: "orphan line"},
	})
	want := "user: hi\nassistant: hello\nunknown: orphan line"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatHistory_WindowKeepsMostRecent(t *testing.T) {
	var msgs []types.Message
	for i := 0; i < 8; i++ {
		msgs = append(msgs, types.Message{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}
	got := formatHistory(msgs)
	lines := strings.Split(got, "\n")
	if len(lines) != historyWindow {
		t.Fatalf("window=%d lines, got %d", historyWindow, len(lines))
	}
	if lines[0] != "user: m3" || lines[len(lines)-1] != "user: m7" {
		t.Fatalf("wrong window: %v", lines)
	}
}
