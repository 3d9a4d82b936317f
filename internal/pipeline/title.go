package pipeline

import (
	"context"
	"fmt"
	"strings"

	"chartisan/internal/llm"
)

const titlePromptTmpl = `Generate a short, concise title (maximum 5-6 words) for this conversation:
Current query: '%s'

The title should be descriptive and relevant to the main topic.
Return only the title without quotes or additional text.`

const titleMaxLen = 100

// TitleMaker names new conversations from their opening query. On any
// completion failure it truncates the query itself.
type TitleMaker struct {
	LLM llm.Client
}

func (t *TitleMaker) Run(ctx context.Context, query string) string {
	text, err := t.LLM.Complete(ctx, fmt.Sprintf(titlePromptTmpl, query), 20, 0.7)
	if err != nil {
		return FallbackTitle(query)
	}
	title := strings.Trim(strings.TrimSpace(text), `"'`)
	if title == "" {
		return FallbackTitle(query)
	}
	if len(title) > titleMaxLen {
		title = title[:titleMaxLen]
	}
	return title
}

// FallbackTitle derives a title from the first words of the query.
func FallbackTitle(query string) string {
	words := strings.Fields(query)
	if len(words) > 6 {
		words = words[:6]
	}
	title := strings.Join(words, " ")
	if len(title) > titleMaxLen {
		title = title[:titleMaxLen-3] + "..."
	}
	if title == "" {
		title = "New Conversation"
	}
	return title
}
