package service

import (
	"context"
	"time"

	"github.com/hanabenko/ticket-scraping-api/internal/connector"
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/dto"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
	"github.com/hanabenko/ticket-scraping-api/internal/pipeline"
)

// TouchpointServicer defines the interface for touchpoint service operations
type TouchpointServicer interface {
	PublishEvent(ctx context.Context, req *dto.PublishEventRequest) (string, error)
	PublishBulkEvents(ctx context.Context, events []dto.PublishEventRequest) ([]string, []string, error)
	Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error)
	RunPipeline(ctx context.Context, req *dto.PipelineRunRequest) (*pipeline.Summary, error)
	UpsertArtist(ctx context.Context, req *dto.ArtistRequest) (*dto.ArtistResponse, error)
	CreateConcert(ctx context.Context, req *dto.ConcertRequest) (*dto.ConcertResponse, error)
	RecomputeAttribution(ctx context.Context, userID uint64, referenceTime *time.Time) (*dto.UserAttributionsResponse, error)
	UserAttributions(ctx context.Context, userID uint64) (*dto.UserAttributionsResponse, error)
	RecomputeRollup(ctx context.Context, date string) (*dto.DailyRollupResponse, error)
	TopArtists(ctx context.Context, req *dto.TopArtistsRequest) (*dto.TopArtistsResponse, error)
	ArtistMetrics(ctx context.Context, artistID uint64, req *dto.ArtistMetricsRequest) (*dto.ArtistMetricsResponse, error)
	ChannelBreakdown(ctx context.Context, artistID uint64, req *dto.ChannelBreakdownRequest) (*dto.ChannelBreakdownResponse, error)
	Health(ctx context.Context) (map[string]string, error)
}

// Pipeline runs sources and batches through ingestion and recompute
type Pipeline interface {
	Run(ctx context.Context, sources ...connector.Source) (*pipeline.Summary, error)
	Process(ctx context.Context, events []domain.CanonicalEvent) (*ingest.Result, error)
}
