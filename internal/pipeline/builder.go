package pipeline

import (
	"context"
	"errors"
	"fmt"

	"chartisan/internal/llm"
	"chartisan/internal/types"
)

const buildPromptTmpl = `Construct the data payload for a %s responding to the request below. Use plausible, contextually relevant values.

QUERY: "%s"
ANALYSIS: %s
CONVERSATION CONTEXT:
%s

The payload MUST follow this exact structure (same keys, same nesting; values are yours):
%s

Return STRICT JSON ONLY. No markdown, no commentary.`

const rebuildPromptTmpl = `The previous payload for a %s was malformed. Regenerate a simpler, minimal, VALID payload for the request below. Keep the data small.

QUERY: "%s"

The payload MUST follow this exact structure (same keys, same nesting; values are yours):
%s

Return STRICT JSON ONLY. No markdown, no commentary.`

// BuiltArtifact is a payload that satisfied its structural template, paired
// with the resolved component identity. Handed off immutably to Gather.
type BuiltArtifact struct {
	Component types.ComponentType
	Chart     types.ChartKind
	Payload   Object
}

// Builder constructs artifact payloads under a three-tier budget: primary
// attempt, simplified regeneration, and a forced-subtype regeneration for
// charts. Every input resolves within one to three completion calls.
type Builder struct {
	LLM llm.Client
}

func (b *Builder) Run(ctx context.Context, prompt string, decision types.ComponentDecision, rec types.AnalysisRecord, history []types.Message) (BuiltArtifact, error) {
	tmpl, ok := templateFor(decision.Component)
	if !ok {
		return BuiltArtifact{}, fmt.Errorf("no template for component %q", decision.Component)
	}

	label := string(decision.Component)
	if decision.Component == types.ComponentChart {
		label = fmt.Sprintf("%s chart", decision.Chart)
	}
	maxTokens := buildBudget(decision.Component)

	check := func(payload Object) error {
		if err := tmpl.validatePayload(payload); err != nil {
			return err
		}
		if decision.Component == types.ComponentChart {
			if _, ok := types.ParseChartKind(payload.String("component_subtype", "")); !ok {
				return errBadSubtype
			}
		}
		return nil
	}

	links := []attemptLink[Object]{
		{run: func(ctx context.Context) (Object, error) {
			full := fmt.Sprintf(buildPromptTmpl, label, prompt, rec.Analysis, formatHistory(history), tmpl.example)
			return b.attempt(ctx, full, maxTokens, 0.4)
		}},
		{
			run: func(ctx context.Context) (Object, error) {
				full := fmt.Sprintf(rebuildPromptTmpl, label, prompt, tmpl.example)
				return b.attempt(ctx, full, maxTokens, 0.2)
			},
			// Simplification recovers structural failures, including
			// completions with no object at all.
			recover: func(err error) bool { return !errors.Is(err, errBadSubtype) },
		},
		{
			run: func(ctx context.Context) (Object, error) {
				forced := fmt.Sprintf(rebuildPromptTmpl, label, prompt, tmpl.example) +
					fmt.Sprintf("\nThe \"component_subtype\" field MUST be exactly %q.", decision.Chart)
				payload, err := b.attempt(ctx, forced, maxTokens, 0.2)
				if err != nil {
					return nil, err
				}
				// The subtype was selected upstream; pin it regardless of
				// what the regeneration chose.
				payload["component_subtype"] = string(decision.Chart)
				return payload, nil
			},
			recover: func(err error) bool {
				return decision.Component == types.ComponentChart && errors.Is(err, errBadSubtype)
			},
		},
	}

	payload, _, err := runFallbacks(ctx, check, links)
	if err != nil {
		return BuiltArtifact{}, err
	}

	art := BuiltArtifact{Component: decision.Component, Payload: payload}
	if decision.Component == types.ComponentChart {
		art.Chart, _ = types.ParseChartKind(payload.String("component_subtype", ""))
	}
	return art, nil
}

func (b *Builder) attempt(ctx context.Context, prompt string, maxTokens int, temperature float32) (Object, error) {
	text, err := b.LLM.Complete(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return nil, err
	}
	obj, ok := ExtractObject(text)
	if !ok {
		return nil, errNoObject
	}
	return obj, nil
}

// buildBudget sets the per-type completion token ceiling: tables carry the
// most rows, cards the least structure.
func buildBudget(component types.ComponentType) int {
	switch component {
	case types.ComponentTable:
		return 800
	case types.ComponentCard:
		return 500
	default:
		return 500
	}
}
