package app

import (
	"context"
	"fmt"
	"log"

	"chartisan/internal/cache/session"
	"chartisan/internal/gateway/config"
	"chartisan/internal/gateway/handler"
	"chartisan/internal/gateway/server"
	"chartisan/internal/llm"
)

type App struct {
	server *server.Server
	llm    llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}

	stores, err := initStores(cfg)
	if err != nil {
		return nil, err
	}

	svc := handler.NewService(handler.ServiceDeps{
		LLM:           client,
		Conversations: stores.conversations,
		Artifacts:     stores.artifacts,
		Attachments:   stores.attachments,
		Cache:         session.New(0, 0),
	})

	mux := server.NewMux(svc)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, llm: client}, nil
}

// newLLMClient picks the real backend when an API key is configured, and the
// deterministic offline client otherwise.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.Gemini.APIKey == "" {
		log.Printf("llm: no API key configured, using offline fake client")
		return llm.NewFakeClient(), nil
	}
	client, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	log.Printf("llm: using %s", client.Name())
	return client, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			log.Printf("llm: close failed: %v", err)
		}
	}
	return a.server.Shutdown(ctx)
}
