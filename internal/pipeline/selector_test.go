package pipeline

import (
	"context"
	"strings"
	"testing"

	"chartisan/internal/types"
)

func analysisFixture() types.AnalysisRecord {
	return types.AnalysisRecord{
		RequiresArtifact: true,
		Analysis:         "compare revenue across quarters",
		DataPoints:       []string{"Q1 revenue", "Q2 revenue"},
		Complexity:       types.ComplexityMedium,
	}
}

func TestSelector_TableFirstTry(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "table", "reasoning": "tabular comparison"}`),
	}}
	s := &Selector{LLM: llm}

	d := s.Run(context.Background(), analysisFixture())
	if !d.OK {
		t.Fatalf("expected success: %+v", d)
	}
	if d.Component != types.ComponentTable {
		t.Fatalf("component=%s", d.Component)
	}
	if llm.callCount() != 1 {
		t.Fatalf("calls=%d, want 1", llm.callCount())
	}
}

func TestSelector_ChartWithSubtypeFirstTry(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "chart", "component_subtype": "line", "reasoning": "trend"}`),
	}}
	d := (&Selector{LLM: llm}).Run(context.Background(), analysisFixture())
	if !d.OK || d.Component != types.ComponentChart || d.Chart != types.ChartLine {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if llm.callCount() != 1 {
		t.Fatalf("calls=%d, want 1", llm.callCount())
	}
}

func TestSelector_MissingSubtypeGetsOneCorrectionRound(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "chart", "reasoning": "some chart"}`),
		textReply(`{"component_type": "chart", "component_subtype": "pie"}`),
	}}
	d := (&Selector{LLM: llm}).Run(context.Background(), analysisFixture())
	if !d.OK || d.Chart != types.ChartPie {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if llm.callCount() != 2 {
		t.Fatalf("calls=%d, want 2", llm.callCount())
	}
	if !strings.Contains(llm.lastPrompt(), "already fixed to \"chart\"") {
		t.Fatalf("second round should use the subtype-only prompt")
	}
}

func TestSelector_InvalidSubtypeTreatedAsMissing(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "chart", "component_subtype": "donut"}`),
		textReply(`{"component_type": "chart", "component_subtype": "bar"}`),
	}}
	d := (&Selector{LLM: llm}).Run(context.Background(), analysisFixture())
	if !d.OK || d.Chart != types.ChartBar {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestSelector_UnknownComponentFailsWithoutCorrection(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "hologram"}`),
	}}
	d := (&Selector{LLM: llm}).Run(context.Background(), analysisFixture())
	if d.OK {
		t.Fatalf("expected failure: %+v", d)
	}
	if llm.callCount() != 1 {
		t.Fatalf("bad component must not trigger the subtype round, calls=%d", llm.callCount())
	}
}

func TestSelector_CorrectionRoundAlsoFails(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "chart"}`),
		textReply(`not json at all`),
	}}
	d := (&Selector{LLM: llm}).Run(context.Background(), analysisFixture())
	if d.OK {
		t.Fatalf("expected failure: %+v", d)
	}
	if d.Reasoning == "" {
		t.Fatalf("failure should carry a reason")
	}
	if llm.callCount() != 2 {
		t.Fatalf("calls=%d, want 2", llm.callCount())
	}
}

func TestSelector_NeverReportsChartWithoutSubtype(t *testing.T) {
	llm := &scriptedLLM{replies: []scriptedReply{
		textReply(`{"component_type": "chart"}`),
		textReply(`{"component_type": "chart"}`),
	}}
	d := (&Selector{LLM: llm}).Run(context.Background(), analysisFixture())
	if d.OK {
		t.Fatalf("chart without subtype must not succeed: %+v", d)
	}
}
