package pipeline

import (
	"context"
	"errors"
)

// scriptedLLM replays a fixed sequence of completions and records every
// prompt it was sent.
type scriptedLLM struct {
	replies []scriptedReply
	prompts []string
}

type scriptedReply struct {
	text string
	err  error
}

func (s *scriptedLLM) Name() string { return "scripted" }
func (s *scriptedLLM) Close() error { return nil }

func (s *scriptedLLM) Complete(_ context.Context, prompt string, _ int, _ float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", errors.New("scripted llm: no replies left")
	}
	out := s.replies[0]
	s.replies = s.replies[1:]
	return out.text, out.err
}

func textReply(text string) scriptedReply  { return scriptedReply{text: text} }
func errReply(err error) scriptedReply     { return scriptedReply{err: err} }
func (s *scriptedLLM) callCount() int      { return len(s.prompts) }
func (s *scriptedLLM) lastPrompt() string  { return s.prompts[len(s.prompts)-1] }
func (s *scriptedLLM) firstPrompt() string { return s.prompts[0] }

const validTablePayload = `{
  "title": "Quarterly Revenue",
  "description": "Revenue per quarter",
  "component_type": "table",
  "style": {"width": "800px", "height": "500px"},
  "data": {"headers": ["Quarter", "Revenue"], "rows": [["Q1", "100"]]},
  "configuration": {}
}`

const validBarChartPayload = `{
  "title": "Monthly Users",
  "description": "Users per month",
  "component_type": "chart",
  "component_subtype": "bar",
  "style": {"width": "800px", "height": "500px"},
  "data": {
    "labels": ["Jan", "Feb"],
    "values": [{"entity": "Product A", "data": [10, 20]}]
  },
  "configuration": {
    "axes": {"x": "Month", "y": "Users"},
    "legend": {"position": "bottom"}
  }
}`
