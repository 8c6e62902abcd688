package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
)

func TestFindSimilarOrdersByScore(t *testing.T) {
	repo, backend, err := NewMemoryCatalogRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	apps := []*core.App{
		{AppID: "exact", Name: "Exact", Vector: []float32{1, 0, 0}},
		{AppID: "close", Name: "Close", Vector: []float32{0.9, 0.1, 0}},
		{AppID: "far", Name: "Far", Vector: []float32{0, 0, 1}},
		{AppID: "novec", Name: "NoVector"},
	}
	if _, err := repo.AddApps(ctx, apps...); err != nil {
		t.Fatalf("Failed to add apps: %v", err)
	}

	matches, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches above threshold, got %d", len(matches))
	}
	if matches[0].App.AppID != "exact" {
		t.Fatalf("Expected 'exact' first, got '%s'", matches[0].App.AppID)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("Expected descending score order")
	}
}

func TestFindSimilarRespectsLimit(t *testing.T) {
	repo, backend, err := NewMemoryCatalogRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		app := &core.App{
			AppID:  string(rune('a' + i)),
			Name:   string(rune('A' + i)),
			Vector: []float32{1, 0, 0},
		}
		if _, err := repo.AddApps(ctx, app); err != nil {
			t.Fatalf("Failed to add app: %v", err)
		}
	}

	matches, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.1, 3)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
}

func TestFindSimilarDimensionMismatch(t *testing.T) {
	repo, backend, err := NewMemoryCatalogRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	app := &core.App{AppID: "a1", Name: "App", Vector: []float32{1, 0, 0, 0}}
	if _, err := repo.AddApps(ctx, app); err != nil {
		t.Fatalf("Failed to add app: %v", err)
	}

	_, err = backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.1, 10)
	if !errors.Is(err, storage.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Fatalf("Expected ~1.0 for identical vectors, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Fatalf("Expected 0 for orthogonal vectors, got %f", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Fatalf("Expected 0 for zero-magnitude vector, got %f", got)
	}
}
