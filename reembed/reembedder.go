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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of apps to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of apps)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the reembedding of all apps in a catalog.
type Reembedder struct {
	catalog   storage.CatalogRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *AppIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(catalog storage.CatalogRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(catalog, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewAppIterator(catalog, config.BatchSize)

	return &Reembedder{
		catalog:   catalog,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the reembedding operation.
// All apps in the catalog will be reembedded with the configured embedder.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	totalApps, err := r.catalog.CountApps(ctx)
	if err != nil {
		return fmt.Errorf("failed to count apps: %w", err)
	}

	if totalApps == 0 {
		fmt.Fprintf(r.progress, "No apps found in catalog (0 apps)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d apps (batch size: %d)\n",
		totalApps, r.config.BatchSize)

	// Initialize progress tracker
	tracker := NewProgressTracker(r.progress, totalApps, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	// Process all apps in batches
	err = r.iterator.ForEach(ctx, func(apps []*core.App) error {
		// Process this batch
		if err := r.processor.Process(ctx, apps); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		// Update progress
		processed += len(apps)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	// Finish progress tracking
	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d apps in %v (%.1f apps/sec)\n",
		totalApps, elapsed.Round(time.Second), float64(totalApps)/elapsed.Seconds())

	return nil
}
