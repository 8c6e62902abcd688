package appscout

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("create new catalog", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		cat, err := NewCatalog(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, cat)
		defer cat.Close()

		// Verify components are initialized
		assert.NotNil(t, cat.CatalogRepository())
		assert.NotNil(t, cat.backend)
		assert.NotNil(t, cat.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a catalog at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		cat, err := NewCatalog(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, cat)
	})
}

func TestCatalog_Close(t *testing.T) {
	tmpDir := t.TempDir()
	cat, err := NewCatalog(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, cat)

	// Close the catalog
	err = cat.Close()
	assert.NoError(t, err)
}

func TestCatalog_FactoryMethods(t *testing.T) {
	tmpDir := t.TempDir()
	cat, err := NewCatalog(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, cat)
	defer cat.Close()

	t.Run("can create ingest pipeline", func(t *testing.T) {
		pipeline, err := cat.NewIngestPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create recommender", func(t *testing.T) {
		recommender, err := cat.NewRecommender()
		require.NoError(t, err)
		require.NotNil(t, recommender)
		recommender.Release()
	})

	t.Run("can create reembedder", func(t *testing.T) {
		reembedder := cat.NewReembedder(nil, io.Discard)
		require.NotNil(t, reembedder)
	})
}

func TestCatalog_RerankBatchSizeWiring(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := ai.NewConfig(ai.WithRerankBatchSize(3))
	cat, err := NewCatalog(tmpDir, WithAIConfig(cfg))
	require.NoError(t, err)
	require.NotNil(t, cat)
	defer cat.Close()

	t.Run("configured batch size reaches the recommender", func(t *testing.T) {
		recommender, err := cat.NewRecommender()
		require.NoError(t, err)
		defer recommender.Release()

		assert.Equal(t, 3, recommender.RerankBatchSize())
	})

	t.Run("caller options override the configured batch size", func(t *testing.T) {
		recommender, err := cat.NewRecommender(recommend.WithRerankBatchSize(2))
		require.NoError(t, err)
		defer recommender.Release()

		assert.Equal(t, 2, recommender.RerankBatchSize())
	})
}
