package pipeline

import (
	"context"
	"fmt"
	"strings"

	"chartisan/internal/llm"
	"chartisan/internal/types"
)

const respondPromptTmpl = `Consider the following conversation context and respond to the prompt.

CONVERSATION CONTEXT:
%s

CURRENT PROMPT: "%s"

Provide a contextually appropriate response that maintains the conversation flow.`

// QuickReply is a plain-text answer from the text path.
type QuickReply struct {
	Content string
}

// Responder produces the conversational answer when no artifact is needed or
// the artifact path failed. No retry: this is already the last fallback, so
// a completion failure here propagates as the pipeline's only hard error.
type Responder struct {
	LLM llm.Client
}

func (r *Responder) Run(ctx context.Context, prompt string, history []types.Message) (QuickReply, error) {
	full := fmt.Sprintf(respondPromptTmpl, formatHistory(history), prompt)
	text, err := r.LLM.Complete(ctx, full, 150, 0.5)
	if err != nil {
		return QuickReply{}, fmt.Errorf("quick response: %w", err)
	}
	return QuickReply{Content: strings.TrimSpace(text)}, nil
}
