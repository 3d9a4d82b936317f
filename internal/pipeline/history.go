package pipeline

import (
	"strings"

	"chartisan/internal/types"
)

// historyWindow is how many trailing messages each stage prompt carries.
const historyWindow = 5

// formatHistory renders the most recent conversation turns for prompt
// inclusion, one "role: content" line per message.
func formatHistory(history []types.Message) string {
	if len(history) == 0 {
		return "No prior conversation"
	}
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	lines := make([]string, 0, historyWindow)
	for _, msg := range history[start:] {
		role := msg.Role
		if role == "" {
			role = "unknown"
		}
		lines = append(lines, role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
