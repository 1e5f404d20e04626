package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

const (
	maxResolveAttempts = 3
	insertBatchSize    = 500

	pgUniqueViolation = "23505"
)

var metricsColumns = []string{
	"views",
	"clicks",
	"ticket_purchases",
	"merch_purchases",
	"streams",
	"ctr",
	"ticket_conversion_rate",
	"merch_conversion_rate",
	"stream_lift",
	"updated_at",
}

// txRepository implements repository.Tx for one gorm transaction
type txRepository struct {
	db *gorm.DB
}

func (t *txRepository) GetOrCreateArtist(ctx context.Context, name string) (*domain.Artist, error) {
	db := t.db.WithContext(ctx)
	return getOrCreate(db, "artist", name,
		func(db *gorm.DB, artist *domain.Artist) error {
			return db.Where("name = ?", name).Take(artist).Error
		},
		func(db *gorm.DB) error {
			return db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&domain.Artist{Name: name}).Error
		})
}

// GetOrCreateUser resolves an empty identity key to the anonymous placeholder
func (t *txRepository) GetOrCreateUser(ctx context.Context, identityKey string) (*domain.User, error) {
	db := t.db.WithContext(ctx)
	if identityKey == "" {
		return getOrCreate(db, "user", "(anonymous)",
			func(db *gorm.DB, user *domain.User) error {
				return db.Where("anonymous = ?", true).Take(user).Error
			},
			func(db *gorm.DB) error {
				return db.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&domain.User{Anonymous: true}).Error
			})
	}

	return getOrCreate(db, "user", identityKey,
		func(db *gorm.DB, user *domain.User) error {
			return db.Where("identity_key = ?", identityKey).Take(user).Error
		},
		func(db *gorm.DB) error {
			key := identityKey
			return db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "identity_key"}},
				DoNothing: true,
			}).Create(&domain.User{IdentityKey: &key}).Error
		})
}

// getOrCreate looks the row up, and when it is missing inserts it with
// ON CONFLICT DO NOTHING inside a savepoint and looks again. A concurrent
// insert of the same key therefore resolves to the winner's row.
func getOrCreate[T any](db *gorm.DB, entity, key string, find func(*gorm.DB, *T) error, create func(*gorm.DB) error) (*T, error) {
	lastErr := gorm.ErrRecordNotFound

	for attempt := 0; ; attempt++ {
		var row T
		err := find(db, &row)
		if err == nil {
			return &row, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.PersistenceError{Op: "find " + entity, Err: err}
		}

		if attempt == maxResolveAttempts {
			break
		}

		err = db.Transaction(func(sp *gorm.DB) error {
			return create(sp)
		})
		if err != nil {
			if !isUniqueViolation(err) {
				return nil, &domain.PersistenceError{Op: "create " + entity, Err: err}
			}
			lastErr = err
		}
	}

	return nil, &domain.EntityResolutionError{Entity: entity, Key: key, Err: lastErr}
}

func (t *txRepository) UpdateArtistProfile(ctx context.Context, artistID uint64, profile domain.ArtistProfile) (*domain.Artist, error) {
	db := t.db.WithContext(ctx)

	updates := make(map[string]any, 2)
	if profile.Genre != nil {
		updates["genre"] = *profile.Genre
	}
	if profile.SocialHandles != nil {
		updates["social_handles"] = datatypes.JSONMap(profile.SocialHandles)
	}
	if len(updates) > 0 {
		err := db.Model(&domain.Artist{}).Where("id = ?", artistID).Updates(updates).Error
		if err != nil {
			return nil, &domain.PersistenceError{Op: "update artist profile", Err: err}
		}
	}

	var artist domain.Artist
	if err := db.Take(&artist, artistID).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "find artist", Err: err}
	}
	return &artist, nil
}

func (t *txRepository) CreateConcert(ctx context.Context, concert *domain.Concert) error {
	if err := t.db.WithContext(ctx).Create(concert).Error; err != nil {
		return &domain.PersistenceError{Op: "create concert", Err: err}
	}
	return nil
}

func (t *txRepository) AppendInteractions(ctx context.Context, interactions []*domain.Interaction) error {
	if len(interactions) == 0 {
		return nil
	}
	if err := t.db.WithContext(ctx).CreateInBatches(interactions, insertBatchSize).Error; err != nil {
		return &domain.PersistenceError{Op: "append interactions", Err: err}
	}
	return nil
}

func (t *txRepository) InteractionsByUser(ctx context.Context, userID uint64) ([]domain.Interaction, error) {
	var rows []domain.Interaction
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, &domain.PersistenceError{Op: "scan interactions by user", Err: err}
	}
	return rows, nil
}

func (t *txRepository) InteractionsBetween(ctx context.Context, from, to time.Time) ([]domain.Interaction, error) {
	var rows []domain.Interaction
	err := t.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at < ?", from.UTC(), to.UTC()).
		Order("occurred_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, &domain.PersistenceError{Op: "scan interactions by day", Err: err}
	}
	return rows, nil
}

func (t *txRepository) UpsertAttributions(ctx context.Context, attributions []*domain.Attribution) error {
	if len(attributions) == 0 {
		return nil
	}

	err := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "artist_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "last_touch_at", "updated_at"}),
	}).Create(&attributions).Error
	if err != nil {
		return &domain.PersistenceError{Op: "upsert attributions", Err: err}
	}
	return nil
}

// ReplaceDailyMetrics deletes the date's rows of artists missing from rows,
// then upserts rows on (artist_id, metric_date)
func (t *txRepository) ReplaceDailyMetrics(ctx context.Context, metricDate time.Time, rows []*domain.ArtistDailyMetrics) error {
	day := domain.DayStart(metricDate)
	db := t.db.WithContext(ctx)

	artistIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		row.MetricDate = day
		artistIDs = append(artistIDs, row.ArtistID)
	}

	stale := db.Where("metric_date = ?", day)
	if len(artistIDs) > 0 {
		stale = stale.Where("artist_id NOT IN ?", artistIDs)
	}
	if err := stale.Delete(&domain.ArtistDailyMetrics{}).Error; err != nil {
		return &domain.PersistenceError{Op: "delete stale daily metrics", Err: err}
	}

	if len(rows) == 0 {
		return nil
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "artist_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns(metricsColumns),
	}).Create(&rows).Error
	if err != nil {
		return &domain.PersistenceError{Op: "upsert daily metrics", Err: err}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
