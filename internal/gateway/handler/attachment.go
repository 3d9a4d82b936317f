package handler

import (
	"io"
	"net/http"
	"strings"
)

const attachmentMaxBytes = 10 << 20 // 10 MiB

type attachmentResponse struct {
	ConversationID string `json:"conversation_id"`
	Name           string `json:"name"`
	Size           int    `json:"size"`
	URL            string `json:"url,omitempty"`
}

// HandleAttachmentUpload stores one uploaded file against a conversation.
// POST /attachments, multipart form with conversation_id and file fields.
func (s *Service) HandleAttachmentUpload(w http.ResponseWriter, r *http.Request) {
	if s.attachments == nil {
		writeError(w, http.StatusServiceUnavailable, "attachment storage is not configured")
		return
	}
	if err := r.ParseMultipartForm(attachmentMaxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	conversationID := strings.TrimSpace(r.FormValue("conversation_id"))
	if conversationID == "" {
		writeError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, attachmentMaxBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read upload failed")
		return
	}
	if len(content) > attachmentMaxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds 10 MiB limit")
		return
	}

	name := strings.TrimSpace(header.Filename)
	if name == "" {
		writeError(w, http.StatusBadRequest, "file name is required")
		return
	}
	contentType := header.Header.Get("Content-Type")

	if err := s.attachments.Put(r.Context(), conversationID, name, contentType, content); err != nil {
		writeError(w, http.StatusInternalServerError, "store attachment failed")
		return
	}

	url, err := s.attachments.GetURL(r.Context(), conversationID, name)
	if err != nil {
		url = ""
	}
	writeJSON(w, http.StatusCreated, attachmentResponse{
		ConversationID: conversationID,
		Name:           name,
		Size:           len(content),
		URL:            url,
	})
}

// HandleAttachmentList lists stored attachment names for a conversation.
// GET /attachments?conversation_id=N.
func (s *Service) HandleAttachmentList(w http.ResponseWriter, r *http.Request) {
	if s.attachments == nil {
		writeError(w, http.StatusServiceUnavailable, "attachment storage is not configured")
		return
	}
	conversationID := strings.TrimSpace(r.URL.Query().Get("conversation_id"))
	if conversationID == "" {
		writeError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}
	names, err := s.attachments.List(r.Context(), conversationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list attachments failed")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation_id": conversationID,
		"attachments":     names,
	})
}
