package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// Tx exposes the operations available inside one store transaction
type Tx interface {
	// GetOrCreateArtist resolves an artist by exact name, inserting it if absent
	GetOrCreateArtist(ctx context.Context, name string) (*domain.Artist, error)

	// GetOrCreateUser resolves a user by identity key, inserting it if absent.
	// An empty key resolves the anonymous placeholder user.
	GetOrCreateUser(ctx context.Context, identityKey string) (*domain.User, error)

	// UpdateArtistProfile overwrites the profile fields that are set and
	// returns the stored artist
	UpdateArtistProfile(ctx context.Context, artistID uint64, profile domain.ArtistProfile) (*domain.Artist, error)

	// CreateConcert inserts a concert; its ID is populated in place
	CreateConcert(ctx context.Context, concert *domain.Concert) error

	// AppendInteractions inserts interaction rows; IDs are populated in place
	AppendInteractions(ctx context.Context, interactions []*domain.Interaction) error

	// InteractionsByUser returns every interaction of a user
	InteractionsByUser(ctx context.Context, userID uint64) ([]domain.Interaction, error)

	// InteractionsBetween returns interactions with from <= occurred_at < to
	InteractionsBetween(ctx context.Context, from, to time.Time) ([]domain.Interaction, error)

	// UpsertAttributions inserts or overwrites rows keyed by (user_id, artist_id)
	UpsertAttributions(ctx context.Context, attributions []*domain.Attribution) error

	// ReplaceDailyMetrics makes rows the complete rollup of metricDate
	ReplaceDailyMetrics(ctx context.Context, metricDate time.Time, rows []*domain.ArtistDailyMetrics) error
}

// Store is the persistence collaborator of the ingestion and compute engines
type Store interface {
	// InTx runs fn in a single transaction, committing only when fn returns nil
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// UserAttributions returns a user's attribution rows ordered by score
	UserAttributions(ctx context.Context, userID uint64) ([]domain.Attribution, error)

	// TopArtists returns the rollups of metricDate ordered by clicks. A
	// negative limit returns every row.
	TopArtists(ctx context.Context, metricDate time.Time, limit int) ([]domain.ArtistDailyMetrics, error)

	// ArtistMetrics returns an artist's rollups with from <= metric_date <= to
	ArtistMetrics(ctx context.Context, artistID uint64, from, to time.Time) ([]domain.ArtistDailyMetrics, error)

	// Migrate creates or updates the schema
	Migrate(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the store and releases resources
	Close() error
}

// Group-by values accepted by ChannelBreakdown
const (
	GroupByChannel = "channel"
	GroupByType    = "type"
	GroupByDay     = "day"
)

// ErrUnsupportedGroupBy is returned for a group-by value the mirror cannot aggregate on
var ErrUnsupportedGroupBy = errors.New("unsupported group_by value")

// ChannelQuery selects interactions mirrored for one artist
type ChannelQuery struct {
	ArtistID uint64
	From     time.Time
	To       time.Time
	GroupBy  string
}

// ChannelGroupResult represents aggregated counts for a specific group
type ChannelGroupResult struct {
	GroupValue  string
	TotalCount  uint64
	UniqueUsers uint64
}

// ChannelResult represents the result of a channel breakdown query
type ChannelResult struct {
	TotalCount  uint64
	UniqueUsers uint64
	Groups      []ChannelGroupResult
}

// InteractionMirror copies committed interactions into an analytics store
type InteractionMirror interface {
	// InsertBatch inserts a batch of interactions into the mirror
	InsertBatch(ctx context.Context, interactions []*domain.Interaction) (int, error)

	// InitSchema creates the mirror tables if they don't exist
	InitSchema(ctx context.Context) error

	// ChannelBreakdown aggregates mirrored interactions of one artist
	ChannelBreakdown(ctx context.Context, query ChannelQuery) (*ChannelResult, error)

	// Ping checks if the mirror connection is alive
	Ping(ctx context.Context) error

	// Close closes the mirror and releases resources
	Close() error
}
