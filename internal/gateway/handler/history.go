package handler

import (
	"net/http"
	"strconv"
	"strings"

	"chartisan/internal/gateway/repository/conversation"
)

type historyResponse struct {
	Conversation conversation.Conversation `json:"conversation"`
	Messages     []conversation.Message    `json:"messages"`
}

// HandleHistory returns a conversation and its full message list.
// GET /conversations/{id}/messages.
func (s *Service) HandleHistory(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	conv, err := s.conversations.GetConversation(r.Context(), id)
	if err != nil {
		if err == conversation.ErrNotFound {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "conversation unavailable")
		return
	}

	msgs, err := s.conversations.ListMessages(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "messages unavailable")
		return
	}
	if msgs == nil {
		msgs = []conversation.Message{}
	}

	writeJSON(w, http.StatusOK, historyResponse{Conversation: conv, Messages: msgs})
}
