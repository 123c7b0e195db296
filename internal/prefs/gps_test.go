package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/ebandobast/internal/database"
	"github.com/jask/ebandobast/internal/database/repository"
)

func openStore(t *testing.T, path string) *GPSInterval {
	t.Helper()
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &GPSInterval{Settings: repository.NewSettingsRepo(db), DefaultMs: 30000}
}

func TestGPSIntervalDefaultsWhenAbsent(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	ms, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 30000, ms)
}

func TestGPSIntervalSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	first := openStore(t, path)
	require.NoError(t, first.Save(ctx, 10000))

	second := openStore(t, path)
	ms, err := second.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 10000, ms)
}

func TestGPSIntervalRejectsNonPositive(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	require.Error(t, store.Save(context.Background(), 0))
	ms, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 30000, ms)
}

func TestGPSIntervalFallsBackOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, store.Settings.Upsert(ctx, GPSIntervalKey, "soon"))

	ms, err := store.Load(ctx)
	require.Error(t, err)
	require.Equal(t, 30000, ms)
}
