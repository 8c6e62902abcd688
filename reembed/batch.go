package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/ingest"
	"github.com/poiesic/appscout/storage"
)

// BatchProcessor handles embedding generation for batches of app records.
type BatchProcessor struct {
	catalog        storage.CatalogRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(catalog storage.CatalogRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		catalog:        catalog,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of apps and updates them in the catalog.
// Vectors are normalized after embedding to ensure compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, apps []*core.App) error {
	if len(apps) == 0 {
		return nil
	}

	// Build the same embedding text ingestion uses so vectors stay comparable
	texts := make([]string, len(apps))
	for i, app := range apps {
		texts[i] = ingest.EmbeddingText(app)
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(apps) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(apps), len(embeddings))
	}

	// Normalize vectors and assign to apps
	for i := range apps {
		apps[i].Vector = NormalizeVector(embeddings[i])
	}

	// Update apps in the catalog
	_, err = bp.catalog.UpdateApps(ctx, apps...)
	if err != nil {
		return fmt.Errorf("failed to update apps: %w", err)
	}

	return nil
}
