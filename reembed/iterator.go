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

	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
)

const (
	// DefaultBatchSize is the default number of apps to fetch in each batch
	DefaultBatchSize = 100
)

// AppIterator iterates over all catalog apps in batches.
type AppIterator struct {
	catalog   storage.CatalogRepository
	batchSize int
}

// NewAppIterator creates a new app iterator.
// batchSize: number of apps to fetch in each batch (must be > 0)
func NewAppIterator(catalog storage.CatalogRepository, batchSize int) *AppIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &AppIterator{
		catalog:   catalog,
		batchSize: batchSize,
	}
}

// ForEach iterates over all catalog apps, calling fn for each batch.
// Iteration stops on first error from fn or when all apps are processed.
// Context cancellation is checked between batches.
func (it *AppIterator) ForEach(ctx context.Context, fn func([]*core.App) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Page through the catalog in key order
	for offset := 0; ; offset += it.batchSize {
		batch, err := it.catalog.ListApps(ctx, offset, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		// Call user function with batch
		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// A short page means we reached the end of the catalog
		if len(batch) < it.batchSize {
			return nil
		}
	}
}
