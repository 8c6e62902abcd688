// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package appscout

import (
	"io"
	"log/slog"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/ai/openai"
	"github.com/poiesic/appscout/ingest"
	"github.com/poiesic/appscout/recommend"
	"github.com/poiesic/appscout/reembed"
	"github.com/poiesic/appscout/storage"
	"github.com/poiesic/appscout/storage/badger"
)

// Catalog bundles the storage backend and AI services behind one handle.
// It is the entry point for embedding the recommender in a host application.
type Catalog struct {
	backend  *badger.Backend
	repo     storage.CatalogRepository
	provider ai.AIProvider
	config   *ai.Config
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(cfg *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = cfg
	}
}

// NewCatalog opens (or creates) a catalog database at filePath and connects
// the configured AI services.
func NewCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	// Apply options
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create catalog repository
	repo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Catalog{
		backend:  backend,
		repo:     repo,
		provider: provider,
		config:   options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

func (c *Catalog) Close() error {
	// Close AI provider first
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := c.repo.Close(); err != nil {
		c.logger.Error("error closing catalog repository", "err", err)
		return err
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Catalog) CatalogRepository() storage.CatalogRepository {
	return c.repo
}

func (c *Catalog) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(c.repo, c.provider, opts...)
}

func (c *Catalog) NewRecommender(opts ...recommend.Option) (*recommend.Recommender, error) {
	// The configured batch size goes first so caller options can still
	// override it.
	opts = append([]recommend.Option{
		recommend.WithRerankBatchSize(c.config.RerankBatchSize),
	}, opts...)
	return recommend.NewRecommender(c.repo, c.provider, opts...)
}

// NewReembedder builds a reembedder over this catalog's repository and
// embedding service. Progress output is written to progress.
func (c *Catalog) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(c.repo, c.provider.Embedder(), config, progress)
}
