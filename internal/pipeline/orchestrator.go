package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/connector"
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
	"github.com/hanabenko/ticket-scraping-api/internal/metrics"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrNoSources is returned by triggers that require at least one source
var ErrNoSources = errors.New("no sources given")

// Options tunes what a run recomputes after ingestion
type Options struct {
	// RecomputeTouchedDates also rebuilds the rollups of every UTC day an
	// ingested interaction fell on, not only the current day
	RecomputeTouchedDates bool
}

// SourceStatus reports the outcome of one source
type SourceStatus struct {
	Connector string `json:"connector"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	Written   int    `json:"written"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// Summary reports the outcome of a run
type Summary struct {
	RunID           string         `json:"run_id"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
	Sources         []SourceStatus `json:"sources"`
	Written         int            `json:"written"`
	Skipped         int            `json:"skipped"`
	UsersRecomputed int            `json:"users_recomputed"`
	Dates           []string       `json:"dates_recomputed"`
}

// Failed reports whether any source ended in error
func (s *Summary) Failed() bool {
	return slices.ContainsFunc(s.Sources, func(status SourceStatus) bool {
		return status.Status == StatusError
	})
}

// Orchestrator sequences load, ingest, attribution and rollups
type Orchestrator struct {
	loader      SourceLoader
	ingester    EventIngester
	attribution AttributionRecomputer
	rollups     RollupRecomputer
	options     Options
	now         func() time.Time
	log         *zap.Logger
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(
	loader SourceLoader,
	ingester EventIngester,
	attribution AttributionRecomputer,
	rollups RollupRecomputer,
	options Options,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		loader:      loader,
		ingester:    ingester,
		attribution: attribution,
		rollups:     rollups,
		options:     options,
		now:         time.Now,
		log:         log,
	}
}

// Run ingests every source in its own transaction, then recomputes
// attribution for the users touched and the rollups of the current day.
// A failing source is recorded in the summary and the run continues;
// recompute failures are returned together with the partial summary.
func (o *Orchestrator) Run(ctx context.Context, sources ...connector.Source) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: o.now().UTC(),
		Sources:   make([]SourceStatus, 0, len(sources)),
	}
	log := o.log.With(zap.String("run_id", summary.RunID))

	log.Info("Pipeline run started", zap.Int("sources", len(sources)))

	var (
		userIDs []uint64
		dates   []time.Time
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return o.finish(summary, "canceled"), err
		}

		status := SourceStatus{Connector: src.Connector, Location: src.Location, Status: StatusOK}
		result, err := o.ingestSource(ctx, src)
		if err != nil {
			status.Status = StatusError
			status.Error = err.Error()
			metrics.SourceFailures.WithLabelValues(src.Connector).Inc()
			log.Error("Source failed",
				zap.String("connector", src.Connector),
				zap.String("location", src.Location),
				zap.Bool("source_error", domain.IsSourceError(err)),
				zap.Error(err))
		} else {
			status.Written = result.Written
			status.Skipped = result.Skipped
			summary.Written += result.Written
			summary.Skipped += result.Skipped
			userIDs = append(userIDs, result.UserIDs...)
			dates = append(dates, result.Dates...)
			log.Info("Source loaded",
				zap.String("connector", src.Connector),
				zap.String("location", src.Location),
				zap.Int("written", result.Written),
				zap.Int("skipped", result.Skipped))
		}
		summary.Sources = append(summary.Sources, status)
	}

	users, days, err := o.recompute(ctx, userIDs, dates)
	summary.UsersRecomputed = users
	summary.Dates = formatDays(days)
	if err != nil {
		log.Error("Pipeline recompute failed", zap.Error(err))
		return o.finish(summary, "failed"), err
	}

	outcome := "ok"
	if summary.Failed() {
		outcome = "partial"
	}
	o.finish(summary, outcome)

	log.Info("Pipeline run finished",
		zap.String("outcome", outcome),
		zap.Int("written", summary.Written),
		zap.Int("skipped", summary.Skipped),
		zap.Int("users_recomputed", summary.UsersRecomputed),
		zap.Strings("dates", summary.Dates))

	return summary, nil
}

// Process ingests one already-normalized batch and recomputes what it touched
func (o *Orchestrator) Process(ctx context.Context, events []domain.CanonicalEvent) (*ingest.Result, error) {
	result, err := o.ingester.Ingest(ctx, slices.Values(events))
	if err != nil {
		return nil, fmt.Errorf("failed to ingest batch: %w", err)
	}

	if _, _, err := o.recompute(ctx, result.UserIDs, result.Dates); err != nil {
		return result, err
	}
	return result, nil
}

func (o *Orchestrator) ingestSource(ctx context.Context, src connector.Source) (*ingest.Result, error) {
	events, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return o.ingester.Ingest(ctx, events)
}

// recompute rescores each distinct user at the current time, then rebuilds
// today's rollups and, when enabled, those of the touched days
func (o *Orchestrator) recompute(ctx context.Context, userIDs []uint64, touched []time.Time) (int, []time.Time, error) {
	now := o.now().UTC()

	users := 0
	seen := make(map[uint64]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		if err := o.attribution.Recompute(ctx, userID, now); err != nil {
			return users, nil, err
		}
		users++
	}

	days := []time.Time{domain.DayStart(now)}
	if o.options.RecomputeTouchedDates {
		days = mergeDays(days, touched)
	}

	var done []time.Time
	for _, day := range days {
		if err := o.rollups.Recompute(ctx, day); err != nil {
			return users, done, err
		}
		done = append(done, day)
	}
	return users, done, nil
}

func (o *Orchestrator) finish(summary *Summary, outcome string) *Summary {
	summary.FinishedAt = o.now().UTC()
	metrics.PipelineRuns.WithLabelValues(outcome).Inc()
	return summary
}

func mergeDays(base, extra []time.Time) []time.Time {
	out := slices.Clone(base)
	for _, t := range extra {
		day := domain.DayStart(t)
		if !slices.ContainsFunc(out, day.Equal) {
			out = append(out, day)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

func formatDays(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(time.DateOnly))
	}
	return out
}
