package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"chartisan/internal/cache/session"
	"chartisan/internal/gateway/repository/conversation"
	"chartisan/internal/pipeline"
	"chartisan/internal/types"
)

type chatRequest struct {
	Prompt         string              `json:"prompt"`
	ConversationID int64               `json:"conversation_id,omitempty"`
	Platform       string              `json:"platform,omitempty"`
	Hint           *types.ArtifactHint `json:"hint,omitempty"`
}

// chatResponse is the stable envelope every chat turn returns, artifact or
// not. Absent artifact fields stay present as nulls or empty objects.
type chatResponse struct {
	Agent                     string               `json:"agent"`
	OriginalPrompt            string               `json:"original_prompt"`
	Timestamp                 string               `json:"timestamp"`
	ConversationContextLength int                  `json:"conversation_context_length"`
	ConversationID            int64                `json:"conversation_id"`
	ConversationTitle         string               `json:"conversation_title,omitempty"`
	HasArtifact               bool                 `json:"has_artifact"`
	ComponentType             *string              `json:"component_type"`
	SubType                   *string              `json:"sub_type"`
	Data                      map[string]any       `json:"data"`
	Style                     map[string]any       `json:"style"`
	Configuration             map[string]any       `json:"configuration"`
	Metadata                  types.ResultMetadata `json:"metadata"`
	Summary                   string               `json:"summary"`
	Content                   string               `json:"content"`
	Cached                    bool                 `json:"cached,omitempty"`
}

// HandleChat runs one prompt through the pipeline and persists the turn.
// POST /chat.
func (s *Service) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	platform := strings.TrimSpace(req.Platform)
	if platform == "" {
		platform = "web"
	}

	ctx := r.Context()

	conv, err := s.resolveConversation(ctx, req)
	if err != nil {
		if err == conversation.ErrNotFound {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		log.Printf("chat: resolve conversation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "conversation unavailable")
		return
	}

	history := s.loadHistory(ctx, conv.ID)

	key := session.Key(platform, req.Prompt, conv.ID)
	if cached, ok := s.cache.Get(key); ok {
		resp := buildChatResponse(req.Prompt, conv, len(history), cached.Result)
		resp.Cached = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	var hint types.ArtifactHint
	if req.Hint != nil {
		hint = *req.Hint
	}

	// Per-request copy so the stage hook targets this conversation only.
	orch := *s.orchestrator
	orch.Hook = s.hub.HookFor(conv.ID)

	result, err := orch.Invoke(ctx, pipeline.Request{
		Prompt:  req.Prompt,
		History: history,
		Hint:    hint,
	})
	if err != nil {
		log.Printf("chat: pipeline failed: %v", err)
		writeError(w, http.StatusBadGateway, "completion service unavailable")
		return
	}

	s.persistTurn(ctx, conv.ID, req.Prompt, result)
	s.cache.Put(key, result)

	writeJSON(w, http.StatusOK, buildChatResponse(req.Prompt, conv, len(history), result))
}

// resolveConversation loads the requested thread, or opens a new one titled
// from the prompt.
func (s *Service) resolveConversation(ctx context.Context, req chatRequest) (conversation.Conversation, error) {
	if req.ConversationID != 0 {
		return s.conversations.GetConversation(ctx, req.ConversationID)
	}
	title := s.titles.Run(ctx, req.Prompt)
	return s.conversations.CreateConversation(ctx, title)
}

func (s *Service) loadHistory(ctx context.Context, conversationID int64) []types.Message {
	msgs, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		log.Printf("chat: load history failed: %v", err)
		return nil
	}
	out := make([]types.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, types.Message{Role: m.Role, Content: m.Content, Timestamp: m.CreatedAt})
	}
	return out
}

// persistTurn stores the user and assistant messages, plus the artifact record
// when one was built. Persistence failures are logged, never surfaced; the
// pipeline result already exists.
func (s *Service) persistTurn(ctx context.Context, conversationID int64, prompt string, result types.PipelineResult) {
	if _, err := s.conversations.AppendMessage(ctx, conversation.Message{
		ConversationID: conversationID,
		Role:           "user",
		Content:        prompt,
	}); err != nil {
		log.Printf("chat: persist user message failed: %v", err)
	}

	assistant, err := s.conversations.AppendMessage(ctx, conversation.Message{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        result.Content,
		HasArtifact:    result.HasArtifact,
	})
	if err != nil {
		log.Printf("chat: persist assistant message failed: %v", err)
		return
	}

	if result.HasArtifact {
		if _, err := s.artifacts.CreateFromResult(ctx, assistant.ID, result); err != nil {
			log.Printf("chat: persist artifact failed: %v", err)
		}
	}
}

func buildChatResponse(prompt string, conv conversation.Conversation, contextLen int, res types.PipelineResult) chatResponse {
	resp := chatResponse{
		Agent:                     "pipeline",
		OriginalPrompt:            prompt,
		Timestamp:                 time.Now().UTC().Format(time.RFC3339),
		ConversationContextLength: contextLen,
		ConversationID:            conv.ID,
		ConversationTitle:         conv.Title,
		HasArtifact:               res.HasArtifact,
		Data:                      res.Data,
		Style:                     res.Style,
		Configuration:             res.Configuration,
		Metadata:                  res.Metadata,
		Summary:                   res.Summary,
		Content:                   res.Content,
	}
	if res.ComponentType != "" {
		ct := res.ComponentType
		resp.ComponentType = &ct
	}
	if res.SubType != "" {
		st := res.SubType
		resp.SubType = &st
	}
	if resp.Content == "" && res.HasArtifact {
		if res.Summary != "" {
			resp.Content = res.Summary
		} else {
			resp.Content = "Here's your requested artifact visualization."
		}
	}
	if resp.Content == "" && !res.HasArtifact {
		resp.Content = "No content available."
	}
	return resp
}
