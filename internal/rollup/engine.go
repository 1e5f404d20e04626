package rollup

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/metrics"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

// Counts holds the funnel counters of one artist for one day
type Counts struct {
	Views           int
	Clicks          int
	TicketPurchases int
	MerchPurchases  int
	Streams         int
}

// Engine recomputes artist daily rollups
type Engine struct {
	store repository.Store
	now   func() time.Time
	log   *zap.Logger
}

// NewEngine creates a new rollup engine
func NewEngine(store repository.Store, log *zap.Logger) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
		log:   log,
	}
}

// Recompute rebuilds every artist's rollup for the UTC day of metricDate.
// Rows of artists without interactions that day are removed.
func (e *Engine) Recompute(ctx context.Context, metricDate time.Time) error {
	start := time.Now()
	defer func() {
		metrics.RecomputeDuration.WithLabelValues("rollup").Observe(time.Since(start).Seconds())
	}()

	day := domain.DayStart(metricDate)

	var artists int
	err := e.store.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		interactions, err := tx.InteractionsBetween(ctx, day, day.Add(24*time.Hour))
		if err != nil {
			return err
		}

		rows := Build(day, Aggregate(interactions), e.now().UTC())
		artists = len(rows)
		return tx.ReplaceDailyMetrics(ctx, day, rows)
	})
	if err != nil {
		return fmt.Errorf("failed to recompute rollups for %s: %w", day.Format(time.DateOnly), err)
	}

	e.log.Debug("Rollups recomputed",
		zap.String("metric_date", day.Format(time.DateOnly)),
		zap.Int("artists", artists))
	return nil
}

// Aggregate counts funnel interactions per artist. Every artist with an
// interaction gets an entry, even if none of its types are counted.
func Aggregate(interactions []domain.Interaction) map[uint64]Counts {
	counts := make(map[uint64]Counts)
	for _, interaction := range interactions {
		c := counts[interaction.ArtistID]
		switch interaction.InteractionType {
		case domain.InteractionView:
			c.Views++
		case domain.InteractionClick:
			c.Clicks++
		case domain.InteractionTicketPurchase:
			c.TicketPurchases++
		case domain.InteractionMerchPurchase:
			c.MerchPurchases++
		case domain.InteractionStream:
			c.Streams++
		}
		counts[interaction.ArtistID] = c
	}
	return counts
}

// Build turns counters into metric rows ordered by artist ID
func Build(day time.Time, counts map[uint64]Counts, updatedAt time.Time) []*domain.ArtistDailyMetrics {
	rows := make([]*domain.ArtistDailyMetrics, 0, len(counts))
	for artistID, c := range counts {
		rows = append(rows, &domain.ArtistDailyMetrics{
			ArtistID:             artistID,
			MetricDate:           day,
			Views:                c.Views,
			Clicks:               c.Clicks,
			TicketPurchases:      c.TicketPurchases,
			MerchPurchases:       c.MerchPurchases,
			Streams:              c.Streams,
			CTR:                  ratio(c.Clicks, c.Views),
			TicketConversionRate: ratio(c.TicketPurchases, c.Clicks),
			MerchConversionRate:  ratio(c.MerchPurchases, c.Clicks),
			StreamLift:           ratio(c.Streams, c.Clicks),
			UpdatedAt:            updatedAt,
		})
	}
	slices.SortFunc(rows, func(a, b *domain.ArtistDailyMetrics) int {
		return cmp.Compare(a.ArtistID, b.ArtistID)
	})
	return rows
}

// ratio is nil only for a zero denominator
func ratio(numerator, denominator int) *float64 {
	if denominator == 0 {
		return nil
	}
	r := float64(numerator) / float64(denominator)
	return &r
}
