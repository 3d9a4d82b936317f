package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"chartisan/internal/llm"
	"chartisan/internal/types"
	"chartisan/internal/util/jsonutil"
)

// Stage names the orchestrator's state-machine states, as surfaced to
// observers.
type Stage string

const (
	StageAnalyzing     Stage = "analyzing"
	StageTextPath      Stage = "text_path"
	StageSelect        Stage = "artifact_select"
	StageBuild         Stage = "artifact_build"
	StageDegradeToText Stage = "degrade_to_text"
	StageDone          Stage = "done"
)

// StageHook observes state transitions. Optional; nil means unobserved.
type StageHook func(stage Stage, detail string)

// Request is the pipeline's inbound boundary: a validated prompt, prior
// conversation, and the upstream classifier's advisory hint.
type Request struct {
	Prompt  string
	History []types.Message
	Hint    types.ArtifactHint
}

const leadInPromptTmpl = `Create a natural introductory response for the following request.

USER QUERY: %s
ANALYSIS: %s
CONTEXT:
%s

Write a brief, engaging response (1-2 sentences) that acknowledges the request and mentions you'll create a visualization or structured view. Return only the response text.`

const summaryPromptTmpl = `Consider the following conversation context and artifact data.

CONVERSATION CONTEXT:
%s

ARTIFACT TYPE: %s (%s)
ARTIFACT DATA: %s

Generate a concise summary paragraph that explains the main insights, relates them to the conversation, and notes that the data is simulated for demonstration. Return only the paragraph.`

// Orchestrator sequences the stages. It never retries across transitions;
// each stage owns its own bounded retry budget.
type Orchestrator struct {
	LLM       llm.Client
	Analyzer  *Analyzer
	Selector  *Selector
	Builder   *Builder
	Responder *Responder
	Hook      StageHook
}

// New wires an orchestrator over a single completion client.
func New(client llm.Client) *Orchestrator {
	return &Orchestrator{
		LLM:       client,
		Analyzer:  &Analyzer{LLM: client},
		Selector:  &Selector{LLM: client},
		Builder:   &Builder{LLM: client},
		Responder: &Responder{LLM: client},
	}
}

// Invoke runs one request through the state machine and returns the
// normalized result. The only error it can surface is the text path's own
// completion failure; everything else degrades.
func (o *Orchestrator) Invoke(ctx context.Context, req Request) (types.PipelineResult, error) {
	o.emit(StageAnalyzing, "")
	rec := o.Analyzer.Run(ctx, req.Prompt, req.History, req.Hint)

	if !rec.RequiresArtifact {
		o.emit(StageTextPath, "")
		return o.textPath(ctx, req)
	}

	o.emit(StageSelect, "")
	decision := o.Selector.Run(ctx, rec)
	if !decision.OK {
		o.emit(StageDegradeToText, decision.Reasoning)
		return o.textPath(ctx, req)
	}

	o.emit(StageBuild, string(decision.Component))
	leadIn := o.leadIn(ctx, req, rec)
	art, err := o.Builder.Run(ctx, req.Prompt, decision, rec, req.History)
	if err != nil {
		o.emit(StageDegradeToText, err.Error())
		log.Printf("orchestrator: build failed, degrading to text: %v", err)
		return o.textPath(ctx, req)
	}

	summary := o.summarize(ctx, req, art)
	res := Gather(nil, &GatherInput{Artifact: art, LeadIn: leadIn, Summary: summary})
	o.emit(StageDone, string(art.Component))
	return res, nil
}

// textPath answers with plain text and finishes the machine. Both TEXT_PATH
// and DEGRADE_TO_TEXT land here.
func (o *Orchestrator) textPath(ctx context.Context, req Request) (types.PipelineResult, error) {
	quick, err := o.Responder.Run(ctx, req.Prompt, req.History)
	if err != nil {
		return types.PipelineResult{}, err
	}
	res := Gather(&quick, nil)
	o.emit(StageDone, "")
	return res, nil
}

// leadIn asks for the short conversational intro shown above the artifact.
// Failure is cosmetic; the summary stands in via Gather.
func (o *Orchestrator) leadIn(ctx context.Context, req Request, rec types.AnalysisRecord) string {
	full := fmt.Sprintf(leadInPromptTmpl, req.Prompt, rec.Analysis, formatHistory(req.History))
	text, err := o.LLM.Complete(ctx, full, 100, 0.7)
	if err != nil {
		log.Printf("orchestrator: lead-in failed: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// summarize narrates a built artifact. Failure is cosmetic.
func (o *Orchestrator) summarize(ctx context.Context, req Request, art BuiltArtifact) string {
	data, err := jsonutil.MarshalNoEscapeIndent(art.Payload, "", "  ")
	if err != nil {
		data = []byte("{}")
	}
	full := fmt.Sprintf(summaryPromptTmpl, formatHistory(req.History), art.Component, art.Chart, data)
	text, err := o.LLM.Complete(ctx, full, 200, 0.5)
	if err != nil {
		log.Printf("orchestrator: summary failed: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

func (o *Orchestrator) emit(stage Stage, detail string) {
	if o.Hook != nil {
		o.Hook(stage, detail)
	}
}
