package types

import (
	"encoding/json"
	"strings"
	"time"
)

// ComponentType is the closed set of renderable component categories.
type ComponentType string

const (
	ComponentTable ComponentType = "table"
	ComponentChart ComponentType = "chart"
	ComponentCard  ComponentType = "card"
	ComponentText  ComponentType = "text"
)

// ParseComponentType maps free-form model output onto the closed set.
func ParseComponentType(s string) (ComponentType, bool) {
	switch ComponentType(strings.ToLower(strings.TrimSpace(s))) {
	case ComponentTable:
		return ComponentTable, true
	case ComponentChart:
		return ComponentChart, true
	case ComponentCard:
		return ComponentCard, true
	case ComponentText:
		return ComponentText, true
	}
	return "", false
}

// ChartKind is the closed set of chart subtypes.
type ChartKind string

const (
	ChartBar    ChartKind = "bar"
	ChartLine   ChartKind = "line"
	ChartPie    ChartKind = "pie"
	ChartRadial ChartKind = "radial"
	ChartRadar  ChartKind = "radar"
	ChartArea   ChartKind = "area"
)

// ParseChartKind maps free-form model output onto the closed set.
func ParseChartKind(s string) (ChartKind, bool) {
	switch ChartKind(strings.ToLower(strings.TrimSpace(s))) {
	case ChartBar:
		return ChartBar, true
	case ChartLine:
		return ChartLine, true
	case ChartPie:
		return ChartPie, true
	case ChartRadial:
		return ChartRadial, true
	case ChartRadar:
		return ChartRadar, true
	case ChartArea:
		return ChartArea, true
	}
	return "", false
}

// ChartKinds lists every valid subtype, in prompt order.
func ChartKinds() []ChartKind {
	return []ChartKind{ChartBar, ChartLine, ChartPie, ChartRadial, ChartRadar, ChartArea}
}

// ComplexityLevel grades how involved the eventual answer is expected to be.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// ParseComplexity falls back to medium for anything outside the set.
func ParseComplexity(s string) ComplexityLevel {
	switch ComplexityLevel(strings.ToLower(strings.TrimSpace(s))) {
	case ComplexityLow:
		return ComplexityLow
	case ComplexityHigh:
		return ComplexityHigh
	}
	return ComplexityMedium
}

// Message is one turn of conversation history.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ArtifactHint is the upstream classifier's advisory verdict. The analyzer
// treats it as a default only; it never bypasses analysis.
type ArtifactHint struct {
	RequiresArtifact bool   `json:"requires_artifact"`
	Reasoning        string `json:"reasoning,omitempty"`
	Analysis         string `json:"analysis,omitempty"`
}

// AnalysisRecord is the analyzer's normalized verdict. Immutable once built.
type AnalysisRecord struct {
	RequiresArtifact bool            `json:"requires_artifact"`
	Analysis         string          `json:"analysis"`
	DataPoints       []string        `json:"data_points,omitempty"`
	Complexity       ComplexityLevel `json:"complexity_level"`
}

// ComponentDecision is the selector's outcome. Chart carries a valid
// ChartKind whenever Component is chart and OK is true.
type ComponentDecision struct {
	Component ComponentType `json:"component_type"`
	Chart     ChartKind     `json:"component_subtype,omitempty"`
	Reasoning string        `json:"reasoning,omitempty"`
	OK        bool          `json:"success"`
}

// ResultMetadata carries the artifact's display metadata.
type ResultMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PipelineResult is the single stable record crossing the pipeline boundary.
// Built once per request and never mutated afterwards.
type PipelineResult struct {
	HasArtifact   bool           `json:"has_artifact"`
	Content       string         `json:"content"`
	Summary       string         `json:"summary,omitempty"`
	ComponentType string         `json:"component_type,omitempty"`
	SubType       string         `json:"sub_type,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	Style         map[string]any `json:"style"`
	Configuration map[string]any `json:"configuration"`
	Metadata      ResultMetadata `json:"metadata"`
}

// DataJSON renders the artifact data for persistence.
func (r PipelineResult) DataJSON() json.RawMessage {
	if r.Data == nil {
		return json.RawMessage(`{}`)
	}
	b, err := json.Marshal(r.Data)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
