package consumer

import (
	"context"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// Envelope carries a parsed event with the callbacks that settle its message
type Envelope struct {
	MessageID string
	Event     domain.CanonicalEvent
	ack       func(context.Context) error
	nack      func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(messageID string, event domain.CanonicalEvent, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		MessageID: messageID,
		Event:     event,
		ack:       ack,
		nack:      nack,
	}
}

// Ack removes the message from the queue
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack leaves the message for redelivery
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}
