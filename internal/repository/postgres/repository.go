package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
)

// Repository implements repository.Store on top of gorm
type Repository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRepository creates a new relational repository
func NewRepository(db *gorm.DB, log *zap.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log,
	}
}

// Migrate creates the tables and unique indexes
func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&domain.Artist{},
		&domain.User{},
		&domain.Concert{},
		&domain.Interaction{},
		&domain.Attribution{},
		&domain.ArtistDailyMetrics{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	r.log.Info("Relational schema migrated successfully")
	return nil
}

// InTx runs fn inside one transaction. Errors returned by fn pass through
// unchanged; begin and commit failures become PersistenceError.
func (r *Repository) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	var fnErr error

	err := r.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		fnErr = fn(ctx, &txRepository{db: gtx})
		return fnErr
	})

	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return &domain.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

// UserAttributions returns a user's attribution rows, highest score first
func (r *Repository) UserAttributions(ctx context.Context, userID uint64) ([]domain.Attribution, error) {
	var rows []domain.Attribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC").
		Order("artist_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query attributions: %w", err)
	}
	return rows, nil
}

// TopArtists returns the rollups of metricDate with the most clicks
func (r *Repository) TopArtists(ctx context.Context, metricDate time.Time, limit int) ([]domain.ArtistDailyMetrics, error) {
	var rows []domain.ArtistDailyMetrics
	err := r.db.WithContext(ctx).
		Where("metric_date = ?", domain.DayStart(metricDate)).
		Order("clicks DESC").
		Order("artist_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top artists: %w", err)
	}
	return rows, nil
}

// ArtistMetrics returns an artist's rollups between two dates, inclusive
func (r *Repository) ArtistMetrics(ctx context.Context, artistID uint64, from, to time.Time) ([]domain.ArtistDailyMetrics, error) {
	var rows []domain.ArtistDailyMetrics
	err := r.db.WithContext(ctx).
		Where("artist_id = ? AND metric_date >= ? AND metric_date <= ?", artistID, domain.DayStart(from), domain.DayStart(to)).
		Order("metric_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query artist metrics: %w", err)
	}
	return rows, nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (r *Repository) Close() error {
	r.log.Info("Closing relational connection")
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		r.log.Error("Error closing relational connection", zap.Error(err))
		return err
	}
	return nil
}
