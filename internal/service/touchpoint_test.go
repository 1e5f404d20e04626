package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/connector"
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/dto"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
	"github.com/hanabenko/ticket-scraping-api/internal/pipeline"
	"github.com/hanabenko/ticket-scraping-api/internal/queue"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

var (
	testNow        = time.Date(2025, 10, 3, 9, 30, 0, 0, time.UTC)
	testOccurredAt = time.Date(2025, 10, 1, 10, 5, 0, 0, time.UTC)
)

// MockEventPublisher is a mock implementation of queue.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, message *queue.EventMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockPipeline is a mock implementation of Pipeline
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Run(ctx context.Context, sources ...connector.Source) (*pipeline.Summary, error) {
	args := m.Called(ctx, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Summary), args.Error(1)
}

func (m *MockPipeline) Process(ctx context.Context, events []domain.CanonicalEvent) (*ingest.Result, error) {
	args := m.Called(ctx, events)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingest.Result), args.Error(1)
}

// MockAttribution is a mock implementation of pipeline.AttributionRecomputer
type MockAttribution struct {
	mock.Mock
}

func (m *MockAttribution) Recompute(ctx context.Context, userID uint64, referenceTime time.Time) error {
	args := m.Called(ctx, userID, referenceTime)
	return args.Error(0)
}

// MockRollups is a mock implementation of pipeline.RollupRecomputer
type MockRollups struct {
	mock.Mock
}

func (m *MockRollups) Recompute(ctx context.Context, metricDate time.Time) error {
	args := m.Called(ctx, metricDate)
	return args.Error(0)
}

// MockStore is a mock implementation of repository.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockStore) UserAttributions(ctx context.Context, userID uint64) ([]domain.Attribution, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attribution), args.Error(1)
}

func (m *MockStore) TopArtists(ctx context.Context, metricDate time.Time, limit int) ([]domain.ArtistDailyMetrics, error) {
	args := m.Called(ctx, metricDate, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArtistDailyMetrics), args.Error(1)
}

func (m *MockStore) ArtistMetrics(ctx context.Context, artistID uint64, from, to time.Time) ([]domain.ArtistDailyMetrics, error) {
	args := m.Called(ctx, artistID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArtistDailyMetrics), args.Error(1)
}

func (m *MockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMirror is a mock implementation of repository.InteractionMirror
type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) InsertBatch(ctx context.Context, interactions []*domain.Interaction) (int, error) {
	args := m.Called(ctx, interactions)
	return args.Int(0), args.Error(1)
}

func (m *MockMirror) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMirror) ChannelBreakdown(ctx context.Context, query repository.ChannelQuery) (*repository.ChannelResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ChannelResult), args.Error(1)
}

func (m *MockMirror) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMirror) Close() error {
	args := m.Called()
	return args.Error(0)
}

type mocks struct {
	publisher   *MockEventPublisher
	pipeline    *MockPipeline
	attribution *MockAttribution
	rollups     *MockRollups
	store       *MockStore
	mirror      *MockMirror
}

func newTestService(withMirror bool) (*TouchpointService, *mocks) {
	m := &mocks{
		publisher:   new(MockEventPublisher),
		pipeline:    new(MockPipeline),
		attribution: new(MockAttribution),
		rollups:     new(MockRollups),
		store:       new(MockStore),
		mirror:      new(MockMirror),
	}

	var mirror repository.InteractionMirror
	if withMirror {
		mirror = m.mirror
	}

	s := NewTouchpointService(m.publisher, m.pipeline, m.attribution, m.rollups, m.store, mirror, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s, m
}

func validRequest() dto.PublishEventRequest {
	return dto.PublishEventRequest{
		ArtistName:      "The Echoes",
		UserIdentifier:  "  Alice@Example.com ",
		InteractionType: "ticket_purchase",
		Channel:         "ticketing",
		OccurredAt:      testOccurredAt.In(time.FixedZone("CEST", 2*3600)),
		Metadata:        map[string]any{"order_id": "o-1"},
	}
}

func TestTouchpointService_PublishEvent_Success(t *testing.T) {
	s, m := newTestService(false)
	req := validRequest()

	m.publisher.On("PublishEvent", mock.Anything, mock.MatchedBy(func(msg *queue.EventMessage) bool {
		return msg.ID != "" &&
			msg.PublishedAt.Equal(testNow) &&
			msg.Event.UserIdentifier == "alice@example.com" &&
			msg.Event.InteractionType == domain.InteractionTicketPurchase &&
			msg.Event.OccurredAt.Location() == time.UTC &&
			msg.Event.OccurredAt.Equal(testOccurredAt)
	})).Return(nil)

	messageID, err := s.PublishEvent(context.Background(), &req)

	require.NoError(t, err)
	assert.NotEmpty(t, messageID)
	m.publisher.AssertExpectations(t)
}

func TestTouchpointService_PublishEvent_UniqueMessageIDs(t *testing.T) {
	s, m := newTestService(false)
	req := validRequest()
	m.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	first, err := s.PublishEvent(context.Background(), &req)
	require.NoError(t, err)
	second, err := s.PublishEvent(context.Background(), &req)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "identical events are distinct touchpoints")
}

func TestTouchpointService_PublishEvent_MissingArtist(t *testing.T) {
	s, m := newTestService(false)
	req := validRequest()
	req.ArtistName = ""

	messageID, err := s.PublishEvent(context.Background(), &req)

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, messageID)
	m.publisher.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestTouchpointService_PublishEvent_QueueError(t *testing.T) {
	s, m := newTestService(false)
	req := validRequest()
	m.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(errors.New("queue publish error"))

	messageID, err := s.PublishEvent(context.Background(), &req)

	assert.ErrorContains(t, err, "failed to publish event to queue")
	assert.NotErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, messageID)
}

func TestTouchpointService_PublishEvent_QueueDisabled(t *testing.T) {
	s := NewTouchpointService(nil, new(MockPipeline), new(MockAttribution), new(MockRollups), new(MockStore), nil, zap.NewNop())
	req := validRequest()

	_, err := s.PublishEvent(context.Background(), &req)

	assert.ErrorIs(t, err, ErrQueueDisabled)
}

func TestTouchpointService_PublishBulkEvents_PartialSuccess(t *testing.T) {
	s, m := newTestService(false)
	good := validRequest()
	bad := validRequest()
	bad.InteractionType = ""

	m.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	ids, rejects, err := s.PublishBulkEvents(context.Background(), []dto.PublishEventRequest{good, bad, good})

	require.NoError(t, err)
	assert.Len(t, ids, 2)
	require.Len(t, rejects, 1)
	assert.Contains(t, rejects[0], "event 1")
	m.publisher.AssertNumberOfCalls(t, "PublishEvent", 2)
}

func TestTouchpointService_Ingest(t *testing.T) {
	s, m := newTestService(false)
	req := &dto.IngestRequest{Events: []dto.PublishEventRequest{validRequest()}}

	m.pipeline.On("Process", mock.Anything, mock.MatchedBy(func(events []domain.CanonicalEvent) bool {
		return len(events) == 1 && events[0].UserIdentifier == "alice@example.com"
	})).Return(&ingest.Result{
		Written: 1,
		UserIDs: []uint64{4},
		Dates:   []time.Time{time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	response, err := s.Ingest(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, &dto.IngestResponse{Written: 1, UsersRecomputed: 1, Dates: []string{"2025-10-01"}}, response)
}

func TestTouchpointService_Ingest_InvalidEventRejectsBatch(t *testing.T) {
	s, m := newTestService(false)
	bad := validRequest()
	bad.OccurredAt = time.Time{}

	_, err := s.Ingest(context.Background(), &dto.IngestRequest{Events: []dto.PublishEventRequest{validRequest(), bad}})

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorContains(t, err, "event 1")
	m.pipeline.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestTouchpointService_RunPipeline(t *testing.T) {
	s, m := newTestService(false)
	summary := &pipeline.Summary{RunID: "run-1", Written: 3}

	m.pipeline.On("Run", mock.Anything, []connector.Source{{Connector: "ticketing", Location: "/data/t.json"}}).
		Return(summary, nil)

	got, err := s.RunPipeline(context.Background(), &dto.PipelineRunRequest{
		Sources: []dto.SourceRequest{{Connector: "ticketing", Location: "/data/t.json"}},
	})

	require.NoError(t, err)
	assert.Same(t, summary, got)
}

func TestTouchpointService_RunPipeline_NoSources(t *testing.T) {
	s, _ := newTestService(false)

	_, err := s.RunPipeline(context.Background(), &dto.PipelineRunRequest{})

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, pipeline.ErrNoSources)
}

func TestTouchpointService_RunPipeline_EngineErrorKeepsSummary(t *testing.T) {
	s, m := newTestService(false)
	summary := &pipeline.Summary{RunID: "run-1"}
	m.pipeline.On("Run", mock.Anything, mock.Anything).Return(summary, errors.New("rollup failed"))

	got, err := s.RunPipeline(context.Background(), &dto.PipelineRunRequest{
		Sources: []dto.SourceRequest{{Connector: "merch", Location: "m.json"}},
	})

	assert.ErrorContains(t, err, "failed to run pipeline")
	assert.Same(t, summary, got)
}

func TestTouchpointService_RecomputeAttribution_DefaultsToNow(t *testing.T) {
	s, m := newTestService(false)
	touched := testOccurredAt

	m.attribution.On("Recompute", mock.Anything, uint64(9), testNow).Return(nil)
	m.store.On("UserAttributions", mock.Anything, uint64(9)).Return([]domain.Attribution{
		{UserID: 9, ArtistID: 7, Score: 5.25, LastTouchAt: &touched},
		{UserID: 9, ArtistID: 3, Score: 0.1},
	}, nil)

	response, err := s.RecomputeAttribution(context.Background(), 9, nil)

	require.NoError(t, err)
	require.NotNil(t, response.ReferenceTime)
	assert.True(t, testNow.Equal(*response.ReferenceTime))
	require.Len(t, response.Attributions, 2)
	assert.Equal(t, uint64(7), response.Attributions[0].ArtistID)
	assert.InDelta(t, 5.25, response.Attributions[0].Score, 1e-12)
	m.attribution.AssertExpectations(t)
}

func TestTouchpointService_RecomputeAttribution_ExplicitReference(t *testing.T) {
	s, m := newTestService(false)
	ref := time.Date(2025, 10, 15, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	m.attribution.On("Recompute", mock.Anything, uint64(9), ref.UTC()).Return(nil)
	m.store.On("UserAttributions", mock.Anything, uint64(9)).Return([]domain.Attribution{}, nil)

	response, err := s.RecomputeAttribution(context.Background(), 9, &ref)

	require.NoError(t, err)
	assert.Empty(t, response.Attributions)
	m.attribution.AssertExpectations(t)
}

func TestTouchpointService_RecomputeAttribution_EngineError(t *testing.T) {
	s, m := newTestService(false)
	m.attribution.On("Recompute", mock.Anything, uint64(9), mock.Anything).
		Return(&domain.PersistenceError{Op: "upsert attributions", Err: errors.New("deadlock")})

	_, err := s.RecomputeAttribution(context.Background(), 9, nil)

	var target *domain.PersistenceError
	assert.ErrorAs(t, err, &target)
	m.store.AssertNotCalled(t, "UserAttributions", mock.Anything, mock.Anything)
}

func TestTouchpointService_RecomputeRollup(t *testing.T) {
	s, m := newTestService(false)
	day := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	ctr := 0.2

	m.rollups.On("Recompute", mock.Anything, day).Return(nil)
	m.store.On("TopArtists", mock.Anything, day, -1).Return([]domain.ArtistDailyMetrics{
		{ArtistID: 9, MetricDate: day, Clicks: 4},
		{ArtistID: 2, MetricDate: day, Views: 10, Clicks: 2, CTR: &ctr},
	}, nil)

	response, err := s.RecomputeRollup(context.Background(), "2025-10-01")

	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", response.Date)
	require.Len(t, response.Artists, 2)
	assert.Equal(t, uint64(2), response.Artists[0].ArtistID)
	assert.Equal(t, &ctr, response.Artists[0].CTR)
	assert.Nil(t, response.Artists[1].CTR)
}

func TestTouchpointService_RecomputeRollup_InvalidDate(t *testing.T) {
	s, m := newTestService(false)

	_, err := s.RecomputeRollup(context.Background(), "01/10/2025")

	assert.ErrorIs(t, err, ErrInvalidRequest)
	m.rollups.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
}

func TestTouchpointService_TopArtists_Defaults(t *testing.T) {
	s, m := newTestService(false)
	today := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

	m.store.On("TopArtists", mock.Anything, today, 10).Return([]domain.ArtistDailyMetrics{}, nil)

	response, err := s.TopArtists(context.Background(), &dto.TopArtistsRequest{})

	require.NoError(t, err)
	assert.Equal(t, "2025-10-03", response.Date)
	assert.Equal(t, 10, response.Limit)
	assert.Empty(t, response.Artists)
	m.store.AssertExpectations(t)
}

func TestTouchpointService_ArtistMetrics_LastNDays(t *testing.T) {
	s, m := newTestService(false)
	from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

	m.store.On("ArtistMetrics", mock.Anything, uint64(7), from, to).Return([]domain.ArtistDailyMetrics{
		{ArtistID: 7, MetricDate: from, Views: 1},
	}, nil)

	response, err := s.ArtistMetrics(context.Background(), 7, &dto.ArtistMetricsRequest{Days: 3})

	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", response.From)
	assert.Equal(t, "2025-10-03", response.To)
	require.Len(t, response.Metrics, 1)
	assert.Equal(t, "2025-10-01", response.Metrics[0].Date)
}

func TestTouchpointService_ArtistMetrics_DefaultSevenDays(t *testing.T) {
	s, m := newTestService(false)
	from := time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

	m.store.On("ArtistMetrics", mock.Anything, uint64(7), from, to).Return([]domain.ArtistDailyMetrics{}, nil)

	_, err := s.ArtistMetrics(context.Background(), 7, &dto.ArtistMetricsRequest{})

	require.NoError(t, err)
	m.store.AssertExpectations(t)
}

func TestTouchpointService_ChannelBreakdown(t *testing.T) {
	s, m := newTestService(true)

	m.mirror.On("ChannelBreakdown", mock.Anything, repository.ChannelQuery{
		ArtistID: 7,
		From:     time.Unix(1759276800, 0).UTC(),
		To:       time.Unix(1759363200, 0).UTC(),
		GroupBy:  repository.GroupByChannel,
	}).Return(&repository.ChannelResult{
		TotalCount:  5,
		UniqueUsers: 2,
		Groups: []repository.ChannelGroupResult{
			{GroupValue: "ticketing", TotalCount: 3, UniqueUsers: 2},
			{GroupValue: "social", TotalCount: 2, UniqueUsers: 1},
		},
	}, nil)

	response, err := s.ChannelBreakdown(context.Background(), 7, &dto.ChannelBreakdownRequest{From: 1759276800, To: 1759363200})

	require.NoError(t, err)
	assert.Equal(t, "channel", response.GroupBy)
	assert.Equal(t, uint64(5), response.TotalCount)
	require.Len(t, response.Groups, 2)
	assert.Equal(t, "ticketing", response.Groups[0].GroupValue)
}

func TestTouchpointService_ChannelBreakdown_MirrorDisabled(t *testing.T) {
	s, _ := newTestService(false)

	_, err := s.ChannelBreakdown(context.Background(), 7, &dto.ChannelBreakdownRequest{From: 1, To: 2})

	assert.ErrorIs(t, err, ErrMirrorDisabled)
}

func TestTouchpointService_ChannelBreakdown_InvalidRange(t *testing.T) {
	s, m := newTestService(true)

	_, err := s.ChannelBreakdown(context.Background(), 7, &dto.ChannelBreakdownRequest{From: 20, To: 10})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = s.ChannelBreakdown(context.Background(), 7, &dto.ChannelBreakdownRequest{From: 0, To: 400 * 24 * 3600})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	m.mirror.AssertNotCalled(t, "ChannelBreakdown", mock.Anything, mock.Anything)
}

func TestTouchpointService_ChannelBreakdown_UnsupportedGroupBy(t *testing.T) {
	s, m := newTestService(true)
	m.mirror.On("ChannelBreakdown", mock.Anything, mock.Anything).
		Return(nil, errors.Join(repository.ErrUnsupportedGroupBy, errors.New("hour")))

	_, err := s.ChannelBreakdown(context.Background(), 7, &dto.ChannelBreakdownRequest{From: 1, To: 2, GroupBy: "hour"})

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestTouchpointService_Health(t *testing.T) {
	s, m := newTestService(true)
	m.store.On("Ping", mock.Anything).Return(nil)
	m.mirror.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	status, err := s.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "unavailable", status["clickhouse"])
}

func TestTouchpointService_Health_StoreDown(t *testing.T) {
	s, m := newTestService(false)
	m.store.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	status, err := s.Health(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "disabled", status["clickhouse"])
}
