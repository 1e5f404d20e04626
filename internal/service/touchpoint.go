package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/connector"
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/dto"
	"github.com/hanabenko/ticket-scraping-api/internal/pipeline"
	"github.com/hanabenko/ticket-scraping-api/internal/queue"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

const (
	defaultTopArtistsLimit = 10
	defaultMetricsDays     = 7
	maxChannelRangeDays    = 366
)

// TouchpointService represents touchpoint service
type TouchpointService struct {
	publisher   queue.EventPublisher
	runner      Pipeline
	attribution pipeline.AttributionRecomputer
	rollups     pipeline.RollupRecomputer
	store       repository.Store
	mirror      repository.InteractionMirror
	now         func() time.Time
	log         *zap.Logger
}

// NewTouchpointService creates a new touchpoint service. publisher and
// mirror may be nil when their backends are not configured.
func NewTouchpointService(
	publisher queue.EventPublisher,
	runner Pipeline,
	attribution pipeline.AttributionRecomputer,
	rollups pipeline.RollupRecomputer,
	store repository.Store,
	mirror repository.InteractionMirror,
	log *zap.Logger,
) *TouchpointService {
	return &TouchpointService{
		publisher:   publisher,
		runner:      runner,
		attribution: attribution,
		rollups:     rollups,
		store:       store,
		mirror:      mirror,
		now:         time.Now,
		log:         log,
	}
}

// toCanonical converts a request into the event the ingestion layer expects
func toCanonical(req *dto.PublishEventRequest) (domain.CanonicalEvent, error) {
	if req.ArtistName == "" {
		return domain.CanonicalEvent{}, fmt.Errorf("%w: artist_name is required", ErrInvalidRequest)
	}
	if req.InteractionType == "" {
		return domain.CanonicalEvent{}, fmt.Errorf("%w: interaction_type is required", ErrInvalidRequest)
	}
	if req.OccurredAt.IsZero() {
		return domain.CanonicalEvent{}, fmt.Errorf("%w: occurred_at is required", ErrInvalidRequest)
	}

	return domain.CanonicalEvent{
		ArtistName:      req.ArtistName,
		UserIdentifier:  domain.NormalizeIdentifier(req.UserIdentifier),
		InteractionType: domain.InteractionType(req.InteractionType),
		Channel:         req.Channel,
		OccurredAt:      req.OccurredAt.UTC(),
		ConcertID:       req.ConcertID,
		Metadata:        req.Metadata,
	}, nil
}

// PublishEvent queues a single event for the consumer
func (s *TouchpointService) PublishEvent(ctx context.Context, req *dto.PublishEventRequest) (string, error) {
	if s.publisher == nil {
		return "", ErrQueueDisabled
	}

	event, err := toCanonical(req)
	if err != nil {
		return "", err
	}

	if !event.InteractionType.Known() {
		s.log.Warn("Publishing event with unknown interaction type",
			zap.String("interaction_type", string(event.InteractionType)),
			zap.String("artist", event.ArtistName))
	}

	message := &queue.EventMessage{
		ID:          uuid.NewString(),
		PublishedAt: s.now().UTC(),
		Event:       event,
	}
	if err := s.publisher.PublishEvent(ctx, message); err != nil {
		return "", fmt.Errorf("failed to publish event to queue: %w", err)
	}

	return message.ID, nil
}

// PublishBulkEvents publishes each event independently and reports the rejects
func (s *TouchpointService) PublishBulkEvents(ctx context.Context, events []dto.PublishEventRequest) ([]string, []string, error) {
	if s.publisher == nil {
		return nil, nil, ErrQueueDisabled
	}

	var messageIDs []string
	var rejects []string

	for i := range events {
		if err := ctx.Err(); err != nil {
			return messageIDs, rejects, err
		}

		messageID, err := s.PublishEvent(ctx, &events[i])
		if err != nil {
			rejects = append(rejects, fmt.Sprintf("event %d: %v", i, err))
			s.log.Warn("Failed to publish event in bulk",
				zap.Int("index", i),
				zap.String("artist", events[i].ArtistName),
				zap.Error(err))
			continue
		}
		messageIDs = append(messageIDs, messageID)
	}

	return messageIDs, rejects, nil
}

// Ingest writes events synchronously and recomputes what they touched
func (s *TouchpointService) Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error) {
	events := make([]domain.CanonicalEvent, 0, len(req.Events))
	for i := range req.Events {
		event, err := toCanonical(&req.Events[i])
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, event)
	}

	result, err := s.runner.Process(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest events: %w", err)
	}

	dates := make([]string, 0, len(result.Dates))
	for _, day := range result.Dates {
		dates = append(dates, day.Format(time.DateOnly))
	}

	return &dto.IngestResponse{
		Written:         result.Written,
		Skipped:         result.Skipped,
		UsersRecomputed: len(result.UserIDs),
		Dates:           dates,
	}, nil
}

// RunPipeline loads, ingests and recomputes the given sources
func (s *TouchpointService) RunPipeline(ctx context.Context, req *dto.PipelineRunRequest) (*pipeline.Summary, error) {
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, pipeline.ErrNoSources)
	}

	sources := make([]connector.Source, 0, len(req.Sources))
	for _, src := range req.Sources {
		sources = append(sources, connector.Source{Connector: src.Connector, Location: src.Location})
	}

	summary, err := s.runner.Run(ctx, sources...)
	if err != nil {
		return summary, fmt.Errorf("failed to run pipeline: %w", err)
	}
	return summary, nil
}

// UpsertArtist resolves an artist by exact name and applies the profile
// fields present in the request
func (s *TouchpointService) UpsertArtist(ctx context.Context, req *dto.ArtistRequest) (*dto.ArtistResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	var artist *domain.Artist
	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		resolved, err := tx.GetOrCreateArtist(ctx, name)
		if err != nil {
			return err
		}
		artist, err = tx.UpdateArtistProfile(ctx, resolved.ID, domain.ArtistProfile{
			Genre:         req.Genre,
			SocialHandles: req.SocialHandles,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save artist: %w", err)
	}

	s.log.Info("Artist saved",
		zap.Uint64("artist_id", artist.ID),
		zap.String("artist", artist.Name))

	return &dto.ArtistResponse{
		ID:            artist.ID,
		Name:          artist.Name,
		Genre:         artist.Genre,
		SocialHandles: artist.SocialHandles,
		CreatedAt:     artist.CreatedAt,
	}, nil
}

// CreateConcert records a show, creating its artist when unknown
func (s *TouchpointService) CreateConcert(ctx context.Context, req *dto.ConcertRequest) (*dto.ConcertResponse, error) {
	name := strings.TrimSpace(req.ArtistName)
	if name == "" {
		return nil, fmt.Errorf("%w: artist_name is required", ErrInvalidRequest)
	}

	concert := &domain.Concert{
		Venue:   req.Venue,
		City:    req.City,
		Country: req.Country,
		Source:  req.Source,
		URL:     req.URL,
	}
	if req.EventDate != "" {
		day, err := parseDate(req.EventDate)
		if err != nil {
			return nil, err
		}
		concert.EventDate = &day
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		artist, err := tx.GetOrCreateArtist(ctx, name)
		if err != nil {
			return err
		}
		concert.ArtistID = artist.ID
		return tx.CreateConcert(ctx, concert)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save concert: %w", err)
	}

	response := &dto.ConcertResponse{
		ID:        concert.ID,
		ArtistID:  concert.ArtistID,
		Venue:     concert.Venue,
		City:      concert.City,
		Country:   concert.Country,
		Source:    concert.Source,
		URL:       concert.URL,
		CreatedAt: concert.CreatedAt,
	}
	if concert.EventDate != nil {
		response.EventDate = concert.EventDate.Format(time.DateOnly)
	}
	return response, nil
}

// RecomputeAttribution rescores a user at referenceTime, or now when nil
func (s *TouchpointService) RecomputeAttribution(ctx context.Context, userID uint64, referenceTime *time.Time) (*dto.UserAttributionsResponse, error) {
	ref := s.now().UTC()
	if referenceTime != nil {
		ref = referenceTime.UTC()
	}

	if err := s.attribution.Recompute(ctx, userID, ref); err != nil {
		return nil, fmt.Errorf("failed to recompute attribution: %w", err)
	}

	response, err := s.UserAttributions(ctx, userID)
	if err != nil {
		return nil, err
	}
	response.ReferenceTime = &ref
	return response, nil
}

// UserAttributions lists a user's stored scores, highest first
func (s *TouchpointService) UserAttributions(ctx context.Context, userID uint64) (*dto.UserAttributionsResponse, error) {
	rows, err := s.store.UserAttributions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attributions: %w", err)
	}

	response := &dto.UserAttributionsResponse{
		UserID:       userID,
		Attributions: make([]dto.AttributionData, 0, len(rows)),
	}
	for _, row := range rows {
		response.Attributions = append(response.Attributions, dto.AttributionData{
			ArtistID:    row.ArtistID,
			Score:       row.Score,
			LastTouchAt: row.LastTouchAt,
		})
	}
	return response, nil
}

// RecomputeRollup rebuilds the rollup of one UTC day
func (s *TouchpointService) RecomputeRollup(ctx context.Context, date string) (*dto.DailyRollupResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	if err := s.rollups.Recompute(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to recompute rollup: %w", err)
	}

	rows, err := s.store.TopArtists(ctx, day, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to get rollup: %w", err)
	}

	// rebuilt rollups are reported in artist order
	slices.SortFunc(rows, func(a, b domain.ArtistDailyMetrics) int {
		return cmp.Compare(a.ArtistID, b.ArtistID)
	})

	return &dto.DailyRollupResponse{
		Date:    day.Format(time.DateOnly),
		Artists: toMetricsData(rows),
	}, nil
}

// TopArtists returns the most clicked artists of a day, today by default
func (s *TouchpointService) TopArtists(ctx context.Context, req *dto.TopArtistsRequest) (*dto.TopArtistsResponse, error) {
	day := domain.DayStart(s.now())
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopArtistsLimit
	}

	rows, err := s.store.TopArtists(ctx, day, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top artists: %w", err)
	}

	return &dto.TopArtistsResponse{
		Date:    day.Format(time.DateOnly),
		Limit:   limit,
		Artists: toMetricsData(rows),
	}, nil
}

// ArtistMetrics returns an artist's rollups for the last N days including today
func (s *TouchpointService) ArtistMetrics(ctx context.Context, artistID uint64, req *dto.ArtistMetricsRequest) (*dto.ArtistMetricsResponse, error) {
	days := req.Days
	if days <= 0 {
		days = defaultMetricsDays
	}

	to := domain.DayStart(s.now())
	from := to.AddDate(0, 0, -(days - 1))

	rows, err := s.store.ArtistMetrics(ctx, artistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get artist metrics: %w", err)
	}

	return &dto.ArtistMetricsResponse{
		ArtistID: artistID,
		From:     from.Format(time.DateOnly),
		To:       to.Format(time.DateOnly),
		Metrics:  toMetricsData(rows),
	}, nil
}

// ChannelBreakdown aggregates an artist's mirrored interactions
func (s *TouchpointService) ChannelBreakdown(ctx context.Context, artistID uint64, req *dto.ChannelBreakdownRequest) (*dto.ChannelBreakdownResponse, error) {
	if s.mirror == nil {
		return nil, ErrMirrorDisabled
	}

	if req.From > req.To {
		s.log.Warn("Invalid time range for channel breakdown",
			zap.Int64("from", req.From),
			zap.Int64("to", req.To),
			zap.Uint64("artist_id", artistID))
		return nil, fmt.Errorf("%w: from must be less than or equal to to", ErrInvalidRequest)
	}
	if rangeDays := (req.To - req.From) / (24 * 3600); rangeDays > maxChannelRangeDays {
		return nil, fmt.Errorf("%w: time range too large (max %d days, got %d days)", ErrInvalidRequest, maxChannelRangeDays, rangeDays)
	}

	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = repository.GroupByChannel
	}

	result, err := s.mirror.ChannelBreakdown(ctx, repository.ChannelQuery{
		ArtistID: artistID,
		From:     time.Unix(req.From, 0).UTC(),
		To:       time.Unix(req.To, 0).UTC(),
		GroupBy:  groupBy,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnsupportedGroupBy) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, fmt.Errorf("failed to get channel breakdown: %w", err)
	}

	response := &dto.ChannelBreakdownResponse{
		ArtistID:    artistID,
		From:        req.From,
		To:          req.To,
		TotalCount:  result.TotalCount,
		UniqueUsers: result.UniqueUsers,
		GroupBy:     groupBy,
		Groups:      make([]dto.ChannelGroupData, 0, len(result.Groups)),
	}
	for _, group := range result.Groups {
		response.Groups = append(response.Groups, dto.ChannelGroupData{
			GroupValue:  group.GroupValue,
			TotalCount:  group.TotalCount,
			UniqueUsers: group.UniqueUsers,
		})
	}
	return response, nil
}

// Health pings the store and, when configured, the mirror
func (s *TouchpointService) Health(ctx context.Context) (map[string]string, error) {
	status := map[string]string{"status": "ok", "postgres": "ok"}
	var failed error

	if err := s.store.Ping(ctx); err != nil {
		status["postgres"] = "unavailable"
		failed = fmt.Errorf("postgres: %w", err)
	}

	switch {
	case s.mirror == nil:
		status["clickhouse"] = "disabled"
	case s.mirror.Ping(ctx) != nil:
		status["clickhouse"] = "unavailable"
		s.log.Warn("Interaction mirror unreachable")
	default:
		status["clickhouse"] = "ok"
	}

	if failed != nil {
		status["status"] = "degraded"
	}
	return status, failed
}

func parseDate(value string) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidRequest, value)
	}
	return day.UTC(), nil
}

func toMetricsData(rows []domain.ArtistDailyMetrics) []dto.ArtistMetricsData {
	out := make([]dto.ArtistMetricsData, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ArtistMetricsData{
			ArtistID:             row.ArtistID,
			Date:                 row.MetricDate.UTC().Format(time.DateOnly),
			Views:                row.Views,
			Clicks:               row.Clicks,
			TicketPurchases:      row.TicketPurchases,
			MerchPurchases:       row.MerchPurchases,
			Streams:              row.Streams,
			CTR:                  row.CTR,
			TicketConversionRate: row.TicketConversionRate,
			MerchConversionRate:  row.MerchConversionRate,
			StreamLift:           row.StreamLift,
		})
	}
	return out
}
