package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
)

// embeddingProcessor generates embeddings for app records.
type embeddingProcessor struct {
	catalog  storage.CatalogRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(catalog storage.CatalogRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		catalog:  catalog,
		embedder: embedder,
		logger:   logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified app records.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing apps for embeddings", "apps", len(ids))

	apps, err := ep.catalog.GetApps(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving apps", "err", err)
		return err
	}

	texts := make([]string, len(apps))
	for i, app := range apps {
		texts[i] = EmbeddingText(app)
	}

	ep.logger.Debug("generating embeddings for apps", "apps", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(apps) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(apps), len(embeddings))
	}

	for i := range embeddings {
		apps[i].Vector = embeddings[i]
	}

	_, err = ep.catalog.UpdateApps(ctx, apps...)
	return err
}

// EmbeddingText builds the text an app is embedded from. The same
// construction must be used at ingestion and at re-embedding time so vectors
// across the catalog stay comparable.
func EmbeddingText(app *core.App) string {
	var sb strings.Builder
	sb.WriteString(app.Name)
	if app.Description != "" {
		sb.WriteString(". ")
		sb.WriteString(app.Description)
	}
	if app.Features.PrimaryUseCase != "" {
		sb.WriteString(". ")
		sb.WriteString(app.Features.PrimaryUseCase)
	}
	return sb.String()
}
