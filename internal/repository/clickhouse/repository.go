package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

// Repository implements repository.InteractionMirror for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
	now    func() time.Time
}

// NewRepository creates a new ClickHouse mirror repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// InitSchema creates the interactions table. Rows are replaced by version so
// re-mirroring the same interaction ID is idempotent after merges.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS interactions (
		interaction_id UInt64,
		user_id UInt64,
		artist_id UInt64,
		interaction_type LowCardinality(String),
		channel LowCardinality(String),
		occurred_at DateTime64(3, 'UTC'),
		metadata String,
		mirrored_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	ORDER BY (artist_id, occurred_at, interaction_id)
	PARTITION BY toYYYYMM(occurred_at)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create interactions table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertBatch appends committed interactions to the mirror
func (r *Repository) InsertBatch(ctx context.Context, interactions []*domain.Interaction) (int, error) {
	if len(interactions) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO interactions")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	now := r.now().UTC()
	version := uint64(now.UnixNano())

	for _, interaction := range interactions {
		metadata, err := encodeMetadata(interaction.Metadata)
		if err != nil {
			return 0, fmt.Errorf("failed to encode metadata of interaction %d: %w", interaction.ID, err)
		}

		err = batch.Append(
			interaction.ID,
			interaction.UserID,
			interaction.ArtistID,
			string(interaction.InteractionType),
			interaction.Channel,
			interaction.OccurredAt.UTC(),
			metadata,
			now,
			version,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append interaction to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return len(interactions), nil
}

// ChannelBreakdown counts an artist's mirrored interactions in [From, To)
func (r *Repository) ChannelBreakdown(ctx context.Context, query repository.ChannelQuery) (*repository.ChannelResult, error) {
	groupExpr, orderBy, err := groupExpression(query.GroupBy)
	if err != nil {
		return nil, err
	}

	result := &repository.ChannelResult{
		Groups: []repository.ChannelGroupResult{},
	}

	whereClause := "WHERE artist_id = ? AND occurred_at >= ? AND occurred_at < ?"
	args := []any{query.ArtistID, query.From.UTC(), query.To.UTC()}

	overallQuery := fmt.Sprintf(`
		SELECT
			count() AS total_count,
			uniq(user_id) AS unique_users
		FROM interactions FINAL
		%s
	`, whereClause)

	row := r.client.Conn().QueryRow(ctx, overallQuery, args...)
	if err := row.Scan(&result.TotalCount, &result.UniqueUsers); err != nil {
		return nil, fmt.Errorf("failed to query channel totals: %w", err)
	}

	groupedQuery := fmt.Sprintf(`
		SELECT
			%s AS group_value,
			count() AS total_count,
			uniq(user_id) AS unique_users
		FROM interactions FINAL
		%s
		GROUP BY group_value
		%s
	`, groupExpr, whereClause, orderBy)

	rows, err := r.client.Conn().Query(ctx, groupedQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel groups: %w", err)
	}
	defer func(rows driver.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close channel group rows", zap.Error(err))
		}
	}(rows)

	for rows.Next() {
		var group repository.ChannelGroupResult
		if err := rows.Scan(&group.GroupValue, &group.TotalCount, &group.UniqueUsers); err != nil {
			return nil, fmt.Errorf("failed to scan channel group row: %w", err)
		}
		result.Groups = append(result.Groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel group rows: %w", err)
	}

	return result, nil
}

// groupExpression maps a group_by value to its select expression and ordering
func groupExpression(groupBy string) (string, string, error) {
	switch groupBy {
	case "", repository.GroupByChannel:
		return "channel", "ORDER BY total_count DESC, group_value ASC", nil
	case repository.GroupByType:
		return "interaction_type", "ORDER BY total_count DESC, group_value ASC", nil
	case repository.GroupByDay:
		return "formatDateTime(toStartOfDay(occurred_at), '%Y-%m-%d')", "ORDER BY group_value ASC", nil
	default:
		return "", "", fmt.Errorf("%w: %s (supported: channel, type, day)", repository.ErrUnsupportedGroupBy, groupBy)
	}
}

func encodeMetadata(metadata map[string]any) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}
