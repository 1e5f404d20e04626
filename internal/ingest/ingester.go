package ingest

import (
	"context"
	"iter"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/metrics"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

// Result describes one committed ingestion
type Result struct {
	Written int
	Skipped int
	// UserIDs holds every distinct user touched, in first-seen order
	UserIDs []uint64
	// Dates holds the distinct UTC days of the written interactions, ascending
	Dates        []time.Time
	Interactions []*domain.Interaction
}

// Ingester persists canonical events as interactions
type Ingester struct {
	store  repository.Store
	mirror repository.InteractionMirror
	log    *zap.Logger
}

// NewIngester creates a new ingester. mirror may be nil.
func NewIngester(store repository.Store, mirror repository.InteractionMirror, log *zap.Logger) *Ingester {
	return &Ingester{
		store:  store,
		mirror: mirror,
		log:    log,
	}
}

// Ingest writes events in a single transaction. Events without an artist
// name or timestamp are skipped. Nothing is committed when any artist, user
// or interaction write fails.
func (i *Ingester) Ingest(ctx context.Context, events iter.Seq[domain.CanonicalEvent]) (*Result, error) {
	var result *Result

	err := i.store.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		result = &Result{}
		artists := make(map[string]uint64)
		users := make(map[string]uint64)
		var rows []*domain.Interaction

		for event := range events {
			if err := ctx.Err(); err != nil {
				return err
			}

			if event.ArtistName == "" || event.OccurredAt.IsZero() {
				result.Skipped++
				i.log.Warn("Skipping incomplete event",
					zap.String("channel", event.Channel),
					zap.String("artist", event.ArtistName),
					zap.Bool("has_timestamp", !event.OccurredAt.IsZero()))
				continue
			}

			artistID, ok := artists[event.ArtistName]
			if !ok {
				artist, err := tx.GetOrCreateArtist(ctx, event.ArtistName)
				if err != nil {
					return err
				}
				artistID = artist.ID
				artists[event.ArtistName] = artistID
			}

			key := event.UserIdentifier
			userID, ok := users[key]
			if !ok {
				user, err := tx.GetOrCreateUser(ctx, key)
				if err != nil {
					return err
				}
				userID = user.ID
				users[key] = userID
				result.UserIDs = append(result.UserIDs, userID)
			}

			rows = append(rows, &domain.Interaction{
				UserID:          userID,
				ArtistID:        artistID,
				ConcertID:       event.ConcertID,
				InteractionType: event.InteractionType,
				Channel:         event.Channel,
				Metadata:        datatypes.JSONMap(event.Metadata),
				OccurredAt:      event.OccurredAt.UTC(),
			})
		}

		if err := tx.AppendInteractions(ctx, rows); err != nil {
			return err
		}

		result.Written = len(rows)
		result.Interactions = rows
		result.Dates = distinctDays(rows)
		return nil
	})
	if err != nil {
		i.log.Error("Ingestion rolled back", zap.Error(err))
		return nil, err
	}

	for _, row := range result.Interactions {
		metrics.InteractionsIngested.WithLabelValues(row.Channel).Inc()
	}
	metrics.InteractionsSkipped.Add(float64(result.Skipped))

	i.mirrorInteractions(ctx, result.Interactions)

	i.log.Info("Ingestion committed",
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped),
		zap.Int("users", len(result.UserIDs)))

	return result, nil
}

// mirrorInteractions copies committed rows to the analytics mirror. The
// relational store stays authoritative, so failures are only logged.
func (i *Ingester) mirrorInteractions(ctx context.Context, rows []*domain.Interaction) {
	if i.mirror == nil || len(rows) == 0 {
		return
	}

	inserted, err := i.mirror.InsertBatch(ctx, rows)
	if err != nil {
		metrics.MirrorFailures.Inc()
		i.log.Error("Failed to mirror interactions",
			zap.Int("count", len(rows)),
			zap.Error(err))
		return
	}

	i.log.Debug("Interactions mirrored", zap.Int("count", inserted))
}

func distinctDays(rows []*domain.Interaction) []time.Time {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, row := range rows {
		day := domain.DayStart(row.OccurredAt)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days
}
