package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"chartisan/internal/cache/session"
	"chartisan/internal/gateway/repository/artifactrec"
	"chartisan/internal/gateway/repository/attachment"
	"chartisan/internal/gateway/repository/conversation"
	"chartisan/internal/llm"
	"chartisan/internal/pipeline"
)

// Service holds every dependency the HTTP surface needs.
type Service struct {
	llm           llm.Client
	orchestrator  *pipeline.Orchestrator
	titles        *pipeline.TitleMaker
	conversations conversation.Store
	artifacts     artifactrec.Store
	attachments   attachment.Store
	cache         *session.Cache
	hub           *Hub
}

type ServiceDeps struct {
	LLM           llm.Client
	Conversations conversation.Store
	Artifacts     artifactrec.Store
	Attachments   attachment.Store
	Cache         *session.Cache
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		llm:           deps.LLM,
		orchestrator:  pipeline.New(deps.LLM),
		titles:        &pipeline.TitleMaker{LLM: deps.LLM},
		conversations: deps.Conversations,
		artifacts:     deps.Artifacts,
		attachments:   deps.Attachments,
		cache:         deps.Cache,
		hub:           NewHub(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("handler: write response failed: %v", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
