package reembed

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/appscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppIterator_ForEach(t *testing.T) {
	repo := setupTestCatalog(t)
	seedApps(t, repo, 7)

	it := NewAppIterator(repo, 3)

	var batchSizes []int
	seen := 0
	err := it.ForEach(context.Background(), func(apps []*core.App) error {
		batchSizes = append(batchSizes, len(apps))
		seen += len(apps)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 7, seen)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
}

func TestAppIterator_EmptyCatalog(t *testing.T) {
	repo := setupTestCatalog(t)

	it := NewAppIterator(repo, 3)

	calls := 0
	err := it.ForEach(context.Background(), func(apps []*core.App) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls, "fn should not be called for an empty catalog")
}

func TestAppIterator_StopsOnError(t *testing.T) {
	repo := setupTestCatalog(t)
	seedApps(t, repo, 7)

	it := NewAppIterator(repo, 3)

	expectedErr := errors.New("batch failed")
	calls := 0
	err := it.ForEach(context.Background(), func(apps []*core.App) error {
		calls++
		return expectedErr
	})
	require.Error(t, err)
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 1, calls, "iteration should stop on first error")
}

func TestAppIterator_ContextCanceled(t *testing.T) {
	repo := setupTestCatalog(t)
	seedApps(t, repo, 7)

	ctx, cancel := context.WithCancel(context.Background())

	it := NewAppIterator(repo, 3)

	calls := 0
	err := it.ForEach(ctx, func(apps []*core.App) error {
		calls++
		cancel()
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestAppIterator_DefaultBatchSize(t *testing.T) {
	repo := setupTestCatalog(t)

	it := NewAppIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)

	it = NewAppIterator(repo, -5)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
