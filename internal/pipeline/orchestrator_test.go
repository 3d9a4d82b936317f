package pipeline

import (
	"context"
	"errors"
	"testing"

	"chartisan/internal/types"
)

const analysisArtifactReply = `{"requires_artifact": true, "analysis": "needs a table", "data_points": ["a", "b"], "complexity_level": "medium"}`
const analysisTextReply = `{"requires_artifact": false, "analysis": "simple question", "data_points": [], "complexity_level": "low"}`

func TestOrchestrator_TextPath(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisTextReply),
		textReply("Paris is the capital of France."),
	}}
	o := New(llm)
	var stages []Stage
	o.Hook = func(stage Stage, _ string) { stages = append(stages, stage) }

	res, err := o.Invoke(context.Background(), Request{Prompt: "capital of France?"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if res.HasArtifact {
		t.Fatalf("expected text result")
	}
	if res.Content != "Paris is the capital of France." {
		t.Fatalf("content=%q", res.Content)
	}
	wantStages := []Stage{StageAnalyzing, StageTextPath, StageDone}
	if len(stages) != len(wantStages) {
		t.Fatalf("stages=%v", stages)
	}
	for i, s := range wantStages {
		if stages[i] != s {
			t.Fatalf("stage[%d]=%s want %s", i, stages[i], s)
		}
	}
	if llm.callCount() != 2 {
		t.Fatalf("calls=%d, want 2", llm.callCount())
	}
}

func TestOrchestrator_ArtifactPath(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisArtifactReply),
		textReply(`{"component_type": "table", "reasoning": "tabular"}`),
		textReply("Here's a table of the data."), // lead-in
		textReply(validTablePayload),
		textReply("The data shows steady growth."), // summary
	}}
	o := New(llm)
	var stages []Stage
	o.Hook = func(stage Stage, _ string) { stages = append(stages, stage) }

	res, err := o.Invoke(context.Background(), Request{Prompt: "show revenue by quarter"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if !res.HasArtifact || res.ComponentType != "table" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Content != "Here's a table of the data." {
		t.Fatalf("content should be the lead-in, got %q", res.Content)
	}
	if res.Summary != "The data shows steady growth." {
		t.Fatalf("summary=%q", res.Summary)
	}
	wantStages := []Stage{StageAnalyzing, StageSelect, StageBuild, StageDone}
	if len(stages) != len(wantStages) {
		t.Fatalf("stages=%v", stages)
	}
	for i, s := range wantStages {
		if stages[i] != s {
			t.Fatalf("stage[%d]=%s want %s", i, stages[i], s)
		}
	}
}

func TestOrchestrator_ChartArtifactEndToEnd(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisArtifactReply),
		textReply(`{"component_type": "chart", "component_subtype": "bar", "reasoning": "category comparison"}`),
		textReply("Here's a bar chart comparing the quarters."),
		textReply(validBarChartPayload),
		textReply("Q2 outpaced Q1 in every region."),
	}}
	o := New(llm)

	res, err := o.Invoke(context.Background(), Request{
		Prompt: "Compare Q1 vs Q2 revenue by region",
		Hint:   types.ArtifactHint{RequiresArtifact: true},
	})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if !res.HasArtifact || res.ComponentType != "chart" || res.SubType != "bar" {
		t.Fatalf("identity: %+v", res)
	}
	if _, ok := res.Data["labels"]; !ok {
		t.Fatalf("chart data lost labels: %v", res.Data)
	}
	if _, ok := res.Data["values"]; !ok {
		t.Fatalf("chart data lost values: %v", res.Data)
	}
}

func TestOrchestrator_SelectorFailureDegradesToText(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisArtifactReply),
		textReply(`{"component_type": "hologram"}`),
		textReply("Plain text answer instead."),
	}}
	o := New(llm)
	var stages []Stage
	o.Hook = func(stage Stage, _ string) { stages = append(stages, stage) }

	res, err := o.Invoke(context.Background(), Request{Prompt: "show things"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if res.HasArtifact {
		t.Fatalf("degraded result must be text")
	}
	if res.Content != "Plain text answer instead." {
		t.Fatalf("content=%q", res.Content)
	}
	sawDegrade := false
	for _, s := range stages {
		if s == StageDegradeToText {
			sawDegrade = true
		}
	}
	if !sawDegrade {
		t.Fatalf("expected degrade transition, stages=%v", stages)
	}
}

func TestOrchestrator_BuildExhaustionDegradesToText(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisArtifactReply),
		textReply(`{"component_type": "table"}`),
		textReply("lead-in text"),
		textReply(`{"title": "broken"}`),
		textReply(`{"title": "still broken"}`),
		textReply("Fallback text answer."),
	}}
	o := New(llm)

	res, err := o.Invoke(context.Background(), Request{Prompt: "show revenue"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if res.HasArtifact {
		t.Fatalf("degraded result must be text")
	}
	if res.Content != "Fallback text answer." {
		t.Fatalf("content=%q", res.Content)
	}
}

func TestOrchestrator_AnalyzerFailureFallsBackToHint(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		errReply(errors.New("backend down")),
		textReply("Answer from the text path."),
	}}
	o := New(llm)

	res, err := o.Invoke(context.Background(), Request{
		Prompt: "hello",
		Hint:   types.ArtifactHint{RequiresArtifact: false},
	})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if res.HasArtifact || res.Content != "Answer from the text path." {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestOrchestrator_TextPathCompletionFailureIsTheOnlyHardError(t *testing.T) {
	backendErr := errors.New("backend down")
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisTextReply),
		errReply(backendErr),
	}}
	o := New(llm)

	_, err := o.Invoke(context.Background(), Request{Prompt: "hello"})
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected the responder failure to surface, got %v", err)
	}
}

func TestOrchestrator_LeadInFailureIsCosmetic(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(analysisArtifactReply),
		textReply(`{"component_type": "table"}`),
		errReply(errors.New("lead-in backend hiccup")),
		textReply(validTablePayload),
		textReply("summary text"),
	}}
	o := New(llm)

	res, err := o.Invoke(context.Background(), Request{Prompt: "show revenue"})
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if !res.HasArtifact {
		t.Fatalf("artifact should still build")
	}
	if res.Content != "summary text" {
		t.Fatalf("summary should stand in for the missing lead-in, got %q", res.Content)
	}
}
