package queue

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// EventMessage is the body of one queued canonical event
type EventMessage struct {
	ID          string                `json:"id"`
	PublishedAt time.Time             `json:"published_at"`
	Event       domain.CanonicalEvent `json:"event"`
}

// Encode serializes the message body
func (m *EventMessage) Encode() ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event message: %w", err)
	}
	return body, nil
}

// DecodeEventMessage parses a message body and rejects events that could
// never be ingested
func DecodeEventMessage(body []byte) (*EventMessage, error) {
	var message EventMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	switch {
	case message.Event.ArtistName == "":
		return nil, errors.New("event has no artist name")
	case message.Event.OccurredAt.IsZero():
		return nil, errors.New("event has no occurred_at")
	case message.Event.InteractionType == "":
		return nil, errors.New("event has no interaction type")
	}

	message.Event.UserIdentifier = domain.NormalizeIdentifier(message.Event.UserIdentifier)
	message.Event.OccurredAt = message.Event.OccurredAt.UTC()
	return &message, nil
}
