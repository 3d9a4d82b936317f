package llm

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	genai "google.golang.org/genai"
)

var ErrEmptyCompletion = errors.New("llm: empty completion from model")

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	// Optional RPS limiter via env: LLM_RPS/GEMINI_RPS and LLM_BURST/GEMINI_BURST
	var rps float64
	var burst int
	for _, key := range []string{"LLM_RPS", "GEMINI_RPS"} {
		if rps != 0 {
			break
		}
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rps = f
			}
		}
	}
	for _, key := range []string{"LLM_BURST", "GEMINI_BURST"} {
		if burst != 0 {
			break
		}
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				burst = n
			}
		}
	}
	return &GeminiClient{cli: cli, model: model, rl: newRPSLimiter(rps, burst)}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// Complete sends the prompt and returns the raw completion text. Transport
// errors and empty candidates are retried with exponential backoff.
func (g *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	log.Printf("LLM request (%s): %d bytes, max_tokens=%d", g.model, len(prompt), maxTokens)

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		// Respect the RPS limiter per attempt (each API call consumes a token).
		if err := g.rl.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			cfg,
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyCompletion
		} else {
			return resp.Candidates[0].Content.Parts[0].Text, nil
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return "", lastErr
}
