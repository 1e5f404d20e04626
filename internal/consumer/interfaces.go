package consumer

import (
	"context"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
)

// MessageParser defines the interface for parsing raw message bytes into events
type MessageParser interface {
	Parse(body []byte) (*domain.CanonicalEvent, error)
}

// BatchProcessor ingests a batch of events and recomputes what it touched
type BatchProcessor interface {
	Process(ctx context.Context, events []domain.CanonicalEvent) (*ingest.Result, error)
}
