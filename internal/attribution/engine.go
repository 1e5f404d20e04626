package attribution

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/metrics"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

// ArtistScore is the decayed score of one user for one artist
type ArtistScore struct {
	Score       float64
	LastTouchAt time.Time
}

// Engine recomputes per-user attribution scores
type Engine struct {
	store  repository.Store
	config Config
	now    func() time.Time
	log    *zap.Logger
}

// NewEngine creates a new attribution engine
func NewEngine(store repository.Store, config Config, log *zap.Logger) (*Engine, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid attribution config: %w", err)
	}
	return &Engine{
		store:  store,
		config: config,
		now:    time.Now,
		log:    log,
	}, nil
}

// Recompute rescores every artist the user interacted with as of
// referenceTime and overwrites their attribution rows. The interaction scan
// and the upsert share one transaction.
func (e *Engine) Recompute(ctx context.Context, userID uint64, referenceTime time.Time) error {
	start := time.Now()
	defer func() {
		metrics.RecomputeDuration.WithLabelValues("attribution").Observe(time.Since(start).Seconds())
	}()

	var artists int
	err := e.store.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		interactions, err := tx.InteractionsByUser(ctx, userID)
		if err != nil {
			return err
		}

		scores := Score(interactions, referenceTime, e.config)
		artists = len(scores)
		if artists == 0 {
			return nil
		}

		updatedAt := e.now().UTC()
		rows := make([]*domain.Attribution, 0, len(scores))
		for artistID, score := range scores {
			lastTouch := score.LastTouchAt
			rows = append(rows, &domain.Attribution{
				UserID:      userID,
				ArtistID:    artistID,
				Score:       score.Score,
				LastTouchAt: &lastTouch,
				UpdatedAt:   updatedAt,
			})
		}
		return tx.UpsertAttributions(ctx, rows)
	})
	if err != nil {
		return fmt.Errorf("failed to recompute attribution for user %d: %w", userID, err)
	}

	e.log.Debug("Attribution recomputed",
		zap.Uint64("user_id", userID),
		zap.Int("artists", artists),
		zap.Time("reference_time", referenceTime))
	return nil
}

// Score sums decayed weights per artist. Interactions after referenceTime
// weigh zero but still count as touches.
func Score(interactions []domain.Interaction, referenceTime time.Time, config Config) map[uint64]ArtistScore {
	scores := make(map[uint64]ArtistScore)
	for _, interaction := range interactions {
		current := scores[interaction.ArtistID]
		current.Score += config.Weights[interaction.InteractionType] * Decay(interaction.OccurredAt, referenceTime, config.HalfLifeDays)
		if interaction.OccurredAt.After(current.LastTouchAt) {
			current.LastTouchAt = interaction.OccurredAt
		}
		scores[interaction.ArtistID] = current
	}
	return scores
}

// Decay returns 0.5^(age/halfLife) with age in days, or 0 for future events
func Decay(occurredAt, referenceTime time.Time, halfLifeDays float64) float64 {
	age := referenceTime.Sub(occurredAt)
	if age < 0 {
		return 0
	}
	ageDays := age.Seconds() / (24 * time.Hour).Seconds()
	return math.Pow(0.5, ageDays/halfLifeDays)
}
