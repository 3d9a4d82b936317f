package pipeline

import (
	"context"
	"fmt"
	"log"

	"chartisan/internal/llm"
	"chartisan/internal/types"
)

const analyzePromptTmpl = `Decide whether answering the request below calls for a structured visual artifact (chart, table, or metric card) or plain text.

CONVERSATION CONTEXT:
%s

CURRENT QUERY: "%s"

UPSTREAM ANALYSIS (advisory): %s

CONSIDER:
1. Data presentation needs: statistics, comparisons between data points, multiple categories or dimensions.
2. Query characteristics: trends, time-based comparisons, several metrics shown together.
3. Response complexity: would plain text be insufficient to present the information clearly?

Return STRICT JSON ONLY:
{
  "requires_artifact": true or false,
  "analysis": "one-paragraph summary of the query in context",
  "data_points": ["notable data point", "..."],
  "complexity_level": "low" or "medium" or "high"
}`

// Analyzer decides whether the answer should be an artifact. It is the
// single authority on that question; the upstream hint only supplies
// defaults when extraction fails. Run never returns an error; the rest of
// the pipeline has no path for an analysis failure, only degradation.
type Analyzer struct {
	LLM llm.Client
}

func (a *Analyzer) Run(ctx context.Context, prompt string, history []types.Message, hint types.ArtifactHint) types.AnalysisRecord {
	full := fmt.Sprintf(analyzePromptTmpl, formatHistory(history), prompt, hintText(hint))

	text, err := a.LLM.Complete(ctx, full, 200, 0.1)
	if err != nil {
		log.Printf("analyze: completion failed, falling back to hint: %v", err)
		return fallbackRecord(hint)
	}
	obj, ok := ExtractObject(text)
	if !ok {
		log.Printf("analyze: no JSON in completion, falling back to hint")
		return fallbackRecord(hint)
	}

	rec := types.AnalysisRecord{
		RequiresArtifact: obj.Bool("requires_artifact", hint.RequiresArtifact),
		Analysis:         obj.String("analysis", hint.Analysis),
		DataPoints:       obj.StringSlice("data_points"),
		Complexity:       types.ParseComplexity(obj.String("complexity_level", "")),
	}
	if rec.RequiresArtifact != hint.RequiresArtifact {
		log.Printf("analyze: overriding upstream hint (%v -> %v)", hint.RequiresArtifact, rec.RequiresArtifact)
	}
	return rec
}

func hintText(hint types.ArtifactHint) string {
	if hint.Analysis == "" && hint.Reasoning == "" {
		return "none"
	}
	return fmt.Sprintf("requires_artifact=%v; %s %s", hint.RequiresArtifact, hint.Analysis, hint.Reasoning)
}

func fallbackRecord(hint types.ArtifactHint) types.AnalysisRecord {
	return types.AnalysisRecord{
		RequiresArtifact: hint.RequiresArtifact,
		Analysis:         hint.Analysis,
		Complexity:       types.ComplexityMedium,
	}
}
