package connector

import (
	"iter"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// Connector maps source-shaped records into canonical events.
// Implementations are pure transforms: no I/O, no persistence.
type Connector interface {
	// Name is the identifier used to declare sources, e.g. "ticketing"
	Name() string

	// Normalize returns a lazy, restartable sequence of canonical events
	Normalize(records []map[string]any) iter.Seq[domain.CanonicalEvent]
}

// ExtractionRule pulls the record array out of a decoded payload
type ExtractionRule interface {
	Extract(payload any) ([]any, bool)
}
