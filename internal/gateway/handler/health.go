package handler

import "net/http"

// HandleHealth reports liveness and the active completion backend.
// GET /healthz.
func (s *Service) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	backend := "none"
	if s.llm != nil {
		backend = s.llm.Name()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": backend,
	})
}
