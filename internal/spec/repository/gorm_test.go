package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/specdock/specdock/internal/spec"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "specs.db")), &gorm.Config{})
	require.NoError(t, err)
	repo := NewGormRepo(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestGormRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rec := &spec.Record{ID: uuid.New().String(), Format: spec.FormatYAML, Content: `{"openapi":"3.0.0","info":{}}`}
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, spec.FormatYAML, got.Format)
	require.Equal(t, rec.Content, got.Content)
	require.False(t, got.CreatedAt.IsZero())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestGormRepoNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.Get(ctx, uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, uuid.New().String()), ErrNotFound)
}

func TestGormRepoDistinctRecords(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a := &spec.Record{ID: uuid.New().String(), Format: spec.FormatJSON, Content: `{"openapi":"3.0.0","info":{"title":"a"}}`}
	b := &spec.Record{ID: uuid.New().String(), Format: spec.FormatJSON, Content: `{"openapi":"3.0.0","info":{"title":"b"}}`}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	gotA, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotEqual(t, gotA.Content, gotB.Content)
}
