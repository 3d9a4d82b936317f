package pipeline

import (
	"context"
	"errors"
	"fmt"

	"chartisan/internal/llm"
	"chartisan/internal/types"
)

const selectPromptTmpl = `Choose the most appropriate presentation format for the analyzed request.

ANALYSIS: %s
DATA POINTS: %v
COMPLEXITY: %s

Allowed component types: "table", "chart", "card", "text".
Allowed chart subtypes: "bar", "line", "pie", "radial", "radar", "area".

GUIDANCE:
1. Statistical comparisons and multi-dimensional data: "table"
2. Trends and time-series: "chart" with "line"
3. Part-to-whole relationships: "chart" with "pie" or "radial"
4. Category comparisons: "chart" with "bar"
5. Multi-metric comparisons: "chart" with "radar"
6. Cumulative data: "chart" with "area"
7. Metric summaries: "card"
8. Honor any type or subtype the analysis itself already implies.

Return STRICT JSON ONLY:
{
  "component_type": "table" or "chart" or "card" or "text",
  "component_subtype": "bar"|"line"|"pie"|"radial"|"radar"|"area" (only when component_type is "chart"),
  "reasoning": "brief explanation of the choice"
}`

const subtypePromptTmpl = `The component type is already fixed to "chart". Pick only the chart subtype for the analyzed request.

ANALYSIS: %s

Allowed subtypes: "bar", "line", "pie", "radial", "radar", "area".

Return STRICT JSON ONLY:
{
  "component_type": "chart",
  "component_subtype": "one of the allowed subtypes",
  "reasoning": "brief explanation"
}`

// Selector picks a component type, with exactly one correction round when
// the model names a chart but not a usable subtype. Any other failure is
// final; the caller degrades to text.
type Selector struct {
	LLM llm.Client
}

func (s *Selector) Run(ctx context.Context, rec types.AnalysisRecord) types.ComponentDecision {
	links := []attemptLink[types.ComponentDecision]{
		{run: func(ctx context.Context) (types.ComponentDecision, error) {
			return s.round(ctx, fmt.Sprintf(selectPromptTmpl, rec.Analysis, rec.DataPoints, rec.Complexity))
		}},
		{
			run: func(ctx context.Context) (types.ComponentDecision, error) {
				return s.round(ctx, fmt.Sprintf(subtypePromptTmpl, rec.Analysis))
			},
			recover: func(err error) bool { return errors.Is(err, errBadSubtype) },
		},
	}

	decision, _, err := runFallbacks(ctx, checkDecision, links)
	if err != nil {
		return types.ComponentDecision{OK: false, Reasoning: err.Error()}
	}
	decision.OK = true
	return decision
}

func (s *Selector) round(ctx context.Context, prompt string) (types.ComponentDecision, error) {
	text, err := s.LLM.Complete(ctx, prompt, 200, 0.3)
	if err != nil {
		return types.ComponentDecision{}, err
	}
	obj, ok := ExtractObject(text)
	if !ok {
		return types.ComponentDecision{}, errNoObject
	}

	decision := types.ComponentDecision{Reasoning: obj.String("reasoning", "")}
	component, ok := types.ParseComponentType(obj.String("component_type", ""))
	if !ok {
		return decision, nil // checkDecision classifies this as errBadComponent
	}
	decision.Component = component
	if component == types.ComponentChart {
		if kind, ok := types.ParseChartKind(obj.String("component_subtype", "")); ok {
			decision.Chart = kind
		}
	}
	return decision, nil
}

// checkDecision enforces the selector's contract: the component must come
// from the closed set, and a chart must carry a valid subtype.
func checkDecision(d types.ComponentDecision) error {
	if d.Component == "" {
		return errBadComponent
	}
	if d.Component == types.ComponentChart && d.Chart == "" {
		return errBadSubtype
	}
	return nil
}
