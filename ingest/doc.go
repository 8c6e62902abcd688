// Package ingest provides pipeline orchestration for loading app listings
// into the catalog.
//
// The Pipeline type manages the ingestion workflow for app records:
//   - Validating and adding listings to storage
//   - Generating embeddings asynchronously
//
// Embedding is performed on a worker pool so callers are not blocked on the
// embedding service. Errors during async processing are logged but do not
// fail the ingestion operation; the reembed package can backfill vectors for
// apps whose embedding failed.
package ingest
