package server

import (
	"net/http"

	"chartisan/internal/gateway/handler"
	"chartisan/internal/gateway/middleware"
)

// NewMux registers the HTTP surface over the gateway service.
func NewMux(svc *handler.Service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", svc.HandleChat)
	mux.HandleFunc("GET /conversations/{id}/messages", svc.HandleHistory)
	mux.HandleFunc("POST /attachments", svc.HandleAttachmentUpload)
	mux.HandleFunc("GET /attachments", svc.HandleAttachmentList)
	mux.HandleFunc("GET /healthz", svc.HandleHealth)
	mux.HandleFunc("GET /ws/pipeline", svc.HandlePipelineWS)
	return middleware.CORS(mux)
}
