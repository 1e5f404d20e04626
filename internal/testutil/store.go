// Package testutil provides a migrated in-memory store for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/repository"
	"github.com/hanabenko/ticket-scraping-api/internal/repository/postgres"
)

// NewStore returns a migrated sqlite-backed store and its gorm handle
func NewStore(t *testing.T) (*postgres.Repository, *gorm.DB) {
	t.Helper()

	db, err := postgres.Open(sqlite.Open("file::memory:"), zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := postgres.NewRepository(db, zap.NewNop())
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return store, db
}

// Seed ingests interactions for (identity, artist) pairs without going through a connector
func Seed(t *testing.T, store repository.Store, rows ...SeedRow) {
	t.Helper()

	err := store.InTx(context.Background(), func(ctx context.Context, tx repository.Tx) error {
		interactions := make([]*domain.Interaction, 0, len(rows))
		for _, row := range rows {
			artist, err := tx.GetOrCreateArtist(ctx, row.Artist)
			if err != nil {
				return err
			}
			user, err := tx.GetOrCreateUser(ctx, row.User)
			if err != nil {
				return err
			}
			interactions = append(interactions, &domain.Interaction{
				UserID:          user.ID,
				ArtistID:        artist.ID,
				InteractionType: row.Type,
				Channel:         "test",
				OccurredAt:      row.At.UTC(),
			})
		}
		return tx.AppendInteractions(ctx, interactions)
	})
	require.NoError(t, err)
}

// SeedRow describes one interaction to seed
type SeedRow struct {
	User   string
	Artist string
	Type   domain.InteractionType
	At     time.Time
}
