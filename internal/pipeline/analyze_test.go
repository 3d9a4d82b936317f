package pipeline

import (
	"context"
	"errors"
	"testing"

	"chartisan/internal/types"
)

func TestAnalyzer_ParsesVerdict(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply("```json\n" + analysisArtifactReply + "\n```"),
	}}
	rec := (&Analyzer{LLM: llm}).Run(context.Background(), "show revenue", nil, types.ArtifactHint{})
	if !rec.RequiresArtifact {
		t.Fatalf("expected artifact verdict")
	}
	if rec.Analysis != "needs a table" {
		t.Fatalf("analysis=%q", rec.Analysis)
	}
	if len(rec.DataPoints) != 2 {
		t.Fatalf("data points: %v", rec.DataPoints)
	}
	if rec.Complexity != types.ComplexityMedium {
		t.Fatalf("complexity=%s", rec.Complexity)
	}
}

func TestAnalyzer_CompletionFailureFallsBackToHint(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{errReply(errors.New("backend down"))}}
	hint := types.ArtifactHint{RequiresArtifact: true, Analysis: "upstream said chart"}
	rec := (&Analyzer{LLM: llm}).Run(context.Background(), "q", nil, hint)
	if !rec.RequiresArtifact {
		t.Fatalf("hint verdict should survive")
	}
	if rec.Analysis != "upstream said chart" {
		t.Fatalf("analysis=%q", rec.Analysis)
	}
	if rec.Complexity != types.ComplexityMedium {
		t.Fatalf("fallback complexity must be medium, got %s", rec.Complexity)
	}
}

func TestAnalyzer_GarbageCompletionFallsBackToHint(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{textReply("no json in here")}}
	rec := (&Analyzer{LLM: llm}).Run(context.Background(), "q", nil, types.ArtifactHint{RequiresArtifact: true})
	if !rec.RequiresArtifact {
		t.Fatalf("hint verdict should survive extraction failure")
	}
}

func TestAnalyzer_VerdictOverridesHint(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{textReply(analysisTextReply)}}
	rec := (&Analyzer{LLM: llm}).Run(context.Background(), "q", nil, types.ArtifactHint{RequiresArtifact: true})
	if rec.RequiresArtifact {
		t.Fatalf("model verdict is authoritative over the hint")
	}
}

func TestAnalyzer_UnknownComplexityDefaultsMedium(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"requires_artifact": true, "analysis": "x", "complexity_level": "extreme"}`),
	}}
	rec := (&Analyzer{LLM: llm}).Run(context.Background(), "q", nil, types.ArtifactHint{})
	if rec.Complexity != types.ComplexityMedium {
		t.Fatalf("complexity=%s", rec.Complexity)
	}
}
