package connector

import (
	"iter"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// Ticketing records look like
// {"artist": "The Echoes", "email": "alice@example.com", "type": "ticket_purchase", "occurred_at": "2025-10-01T10:05:00Z"}
// The type is passed through untouched.
var ticketingMapping = fieldMapping{
	channel:     "ticketing",
	typeKeys:    []string{"type", "interaction_type"},
	defaultType: domain.InteractionClick,
}

type TicketingConnector struct{}

func (TicketingConnector) Name() string { return "ticketing" }

func (TicketingConnector) Normalize(records []map[string]any) iter.Seq[domain.CanonicalEvent] {
	return ticketingMapping.normalize(records)
}
