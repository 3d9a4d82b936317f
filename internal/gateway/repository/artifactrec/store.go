package artifactrec

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chartisan/internal/types"
)

var ErrNotFound = errors.New("artifact not found")

// Record is one persisted artifact, keyed by the assistant message that
// produced it.
type Record struct {
	ID            int64           `json:"id"`
	MessageID     int64           `json:"message_id"`
	ComponentType string          `json:"component_type"`
	SubType       string          `json:"sub_type,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Data          json.RawMessage `json:"data"`
	Style         json.RawMessage `json:"style"`
	Configuration json.RawMessage `json:"configuration"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Store persists artifacts produced by the pipeline.
type Store interface {
	CreateFromResult(ctx context.Context, messageID int64, res types.PipelineResult) (Record, error)
	GetByMessage(ctx context.Context, messageID int64) (Record, error)
}

// fromResult flattens a pipeline result into a storable record.
func fromResult(messageID int64, res types.PipelineResult) Record {
	return Record{
		MessageID:     messageID,
		ComponentType: res.ComponentType,
		SubType:       res.SubType,
		Title:         res.Metadata.Title,
		Description:   res.Metadata.Description,
		Data:          res.DataJSON(),
		Style:         marshalOrEmpty(res.Style),
		Configuration: marshalOrEmpty(res.Configuration),
		CreatedAt:     time.Now(),
	}
}

func marshalOrEmpty(m map[string]any) json.RawMessage {
	if m == nil {
		return json.RawMessage(`{}`)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
