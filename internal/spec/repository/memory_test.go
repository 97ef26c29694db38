package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/specdock/specdock/internal/spec"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	rec := &spec.Record{ID: uuid.New().String(), Format: spec.FormatJSON, Content: `{"openapi":"3.0.0"}`}
	require.NoError(t, r.Create(ctx, rec))
	require.False(t, rec.CreatedAt.IsZero())

	got, err := r.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Content, got.Content)
	require.Equal(t, spec.FormatJSON, got.Format)

	// mutating the returned record must not affect the stored one
	got.Content = "mutated"
	again, err := r.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Content, again.Content)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, r.Delete(ctx, rec.ID))
	_, err = r.Get(ctx, rec.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, rec.ID), ErrNotFound)
}
