package pipeline

import (
	"context"
	"iter"
	"time"

	"github.com/hanabenko/ticket-scraping-api/internal/connector"
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
)

// SourceLoader turns a declared source into canonical events
type SourceLoader interface {
	Load(ctx context.Context, src connector.Source) (iter.Seq[domain.CanonicalEvent], error)
}

// EventIngester persists canonical events
type EventIngester interface {
	Ingest(ctx context.Context, events iter.Seq[domain.CanonicalEvent]) (*ingest.Result, error)
}

// AttributionRecomputer rescores one user
type AttributionRecomputer interface {
	Recompute(ctx context.Context, userID uint64, referenceTime time.Time) error
}

// RollupRecomputer rebuilds the rollups of one day
type RollupRecomputer interface {
	Recompute(ctx context.Context, metricDate time.Time) error
}
