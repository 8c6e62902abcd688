package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReembedder_Run(t *testing.T) {
	repo := setupTestCatalog(t)
	ctx := context.Background()

	added := seedApps(t, repo, 10)

	// Run reembedding
	var buf bytes.Buffer
	embedder := &mockEmbedder{}
	config := &Config{
		BatchSize:      3,
		ReportInterval: 3,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
	}

	reembedder := NewReembedder(repo, embedder, config, &buf)
	err := reembedder.Run(ctx)
	require.NoError(t, err)

	// Verify all apps have normalized embeddings
	for _, app := range added {
		updated, err := repo.GetApp(ctx, app.Id)
		require.NoError(t, err)
		require.NotEmpty(t, updated.Vector, "app %d should have embedding", app.Id)

		var magnitude float32
		for _, v := range updated.Vector {
			magnitude += v * v
		}
		assert.InDelta(t, 1.0, magnitude, 0.01, "vector should be normalized")
	}

	// Check progress output
	output := buf.String()
	assert.Contains(t, output, "10/10", "should show completion")
}

func TestReembedder_EmptyCatalog(t *testing.T) {
	repo := setupTestCatalog(t)

	var buf bytes.Buffer
	embedder := &mockEmbedder{}
	config := DefaultConfig()

	reembedder := NewReembedder(repo, embedder, config, &buf)
	err := reembedder.Run(context.Background())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "0 apps", "should report zero apps")
}

func TestReembedder_ContextCancellation(t *testing.T) {
	repo := setupTestCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())

	seedApps(t, repo, 10)

	// Cancel after processing a few batches
	callCount := 0
	embedder := &mockEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			callCount++
			if callCount == 2 {
				cancel()
			}
			result := make([][]float32, len(texts))
			for i := range result {
				result[i] = []float32{1.0, 0.0, 0.0}
			}
			return result, nil
		},
	}

	var buf bytes.Buffer
	config := &Config{
		BatchSize:      3,
		ReportInterval: 3,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
	}

	reembedder := NewReembedder(repo, embedder, config, &buf)
	err := reembedder.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReembedder_EmbeddingError(t *testing.T) {
	repo := setupTestCatalog(t)
	ctx := context.Background()

	seedApps(t, repo, 1)

	// Embedder that always fails
	embedder := &mockEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("persistent error")
		},
	}

	var buf bytes.Buffer
	config := &Config{
		BatchSize:      1,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     10 * time.Millisecond,
	}

	reembedder := NewReembedder(repo, embedder, config, &buf)
	err := reembedder.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistent error")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Greater(t, config.BatchSize, 0, "batch size should be positive")
	assert.Greater(t, config.ReportInterval, 0, "report interval should be positive")
	assert.Greater(t, config.MaxRetries, 0, "max retries should be positive")
	assert.Greater(t, config.RetryDelay, time.Duration(0), "retry delay should be positive")
}

func TestReembedder_ProgressTracking(t *testing.T) {
	repo := setupTestCatalog(t)
	ctx := context.Background()

	seedApps(t, repo, 25)

	var buf bytes.Buffer
	embedder := &mockEmbedder{}
	config := &Config{
		BatchSize:      5,
		ReportInterval: 10, // Report every 10 apps
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
	}

	reembedder := NewReembedder(repo, embedder, config, &buf)
	err := reembedder.Run(ctx)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Progress:", "should show progress")
	assert.Contains(t, output, "25/25", "should show final count")
}
