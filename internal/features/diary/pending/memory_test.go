package pending

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-tracker-bot/internal/features/diary/models"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, &models.PendingCandidate{Name: "Borscht", Calories: 250}))
	require.NoError(t, store.Set(ctx, 1, &models.PendingCandidate{Name: "Pizza", Calories: 800}))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pizza", got.Name)
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, &models.PendingCandidate{Name: "Borscht"}))

	_, err := store.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, &models.PendingCandidate{Name: "Borscht"}))
	require.NoError(t, store.Delete(ctx, 1))

	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, 1))
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, &models.PendingCandidate{Name: "Borscht", Calories: 250}))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	got.Calories = 0

	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 250, again.Calories)
}
