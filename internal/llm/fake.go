package llm

import (
	"context"
	"strings"
)

// FakeClient returns deterministic, minimal payloads per prompt kind for
// offline runs. Each pipeline prompt carries a distinct section header,
// which is enough to route to a plausible canned answer.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(_ context.Context, prompt string, _ int, _ float32) (string, error) {
	switch {
	case strings.Contains(prompt, `"requires_artifact"`):
		return `{"requires_artifact": false, "analysis": "fake analysis", "data_points": [], "complexity_level": "low"}`, nil
	case strings.Contains(prompt, `"component_type"`) && strings.Contains(prompt, `"component_subtype"`) && !strings.Contains(prompt, `"title"`):
		return `{"component_type": "table", "reasoning": "fake selection"}`, nil
	case strings.Contains(prompt, `"style"`) && strings.Contains(prompt, `"title"`):
		return `{
  "title": "Fake Table",
  "description": "deterministic offline payload",
  "component_type": "table",
  "style": {"width": "800px", "height": "500px"},
  "data": {"headers": ["Category", "Value"], "rows": [["A", "1"]]},
  "configuration": {}
}`, nil
	default:
		return "This is a canned offline response.", nil
	}
}
