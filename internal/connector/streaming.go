package connector

import (
	"iter"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

var streamingMapping = fieldMapping{
	channel:     "streaming",
	typeKeys:    []string{"type", "interaction_type"},
	defaultType: domain.InteractionStream,
}

type StreamingConnector struct{}

func (StreamingConnector) Name() string { return "streaming" }

func (StreamingConnector) Normalize(records []map[string]any) iter.Seq[domain.CanonicalEvent] {
	return streamingMapping.normalize(records)
}
