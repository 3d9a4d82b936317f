package pipeline

import (
	"chartisan/internal/types"
)

// GatherInput pairs an artifact with its surrounding narration: the lead-in
// shown as content and the post-build summary. The artifact data itself is
// never used as content.
type GatherInput struct {
	Artifact BuiltArtifact
	LeadIn   string
	Summary  string
}

// Gather merges exactly one path's output into the stable PipelineResult.
// Mutual exclusivity of the two inputs is the orchestrator's invariant, not
// checked here; when both arrive, the artifact wins. Pure function, no I/O.
func Gather(quick *QuickReply, art *GatherInput) types.PipelineResult {
	if art != nil {
		payload := art.Artifact.Payload
		content := art.LeadIn
		if content == "" {
			content = art.Summary
		}
		res := types.PipelineResult{
			HasArtifact:   true,
			Content:       content,
			Summary:       art.Summary,
			ComponentType: string(art.Artifact.Component),
			SubType:       string(art.Artifact.Chart),
			Data:          asMap(payload["data"]),
			Style:         asMap(payload["style"]),
			Configuration: asMap(payload["configuration"]),
			Metadata: types.ResultMetadata{
				Title:       payload.String("title", ""),
				Description: payload.String("description", ""),
			},
		}
		return res
	}

	res := types.PipelineResult{
		Style:         map[string]any{},
		Configuration: map[string]any{},
	}
	if quick != nil {
		res.Content = quick.Content
	}
	return res
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
