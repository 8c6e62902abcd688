package reembed

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
	"github.com/poiesic/appscout/storage/badger"
	"github.com/stretchr/testify/require"
)

// mockEmbedder is a stub embedder with an injectable batch function.
type mockEmbedder struct {
	embedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (m *mockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedTextsFunc != nil {
		return m.embedTextsFunc(ctx, texts)
	}
	result := make([][]float32, len(texts))
	for i := range result {
		result[i] = []float32{3.0, 4.0, 0.0} // Not unit length; exercises normalization
	}
	return result, nil
}

func setupTestCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()

	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

// seedApps adds count minimal apps to the catalog.
func seedApps(t *testing.T, repo storage.CatalogRepository, count int) []*core.App {
	t.Helper()

	apps := make([]*core.App, count)
	for i := 0; i < count; i++ {
		apps[i] = &core.App{
			AppID:       fmt.Sprintf("com.example.app%d", i),
			Name:        fmt.Sprintf("App %d", i),
			Category:    "Utilities",
			Rating:      4.0,
			Description: "test app",
		}
	}
	added, err := repo.AddApps(context.Background(), apps...)
	require.NoError(t, err)
	require.Len(t, added, count)
	return added
}
