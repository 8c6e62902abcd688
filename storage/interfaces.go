package storage

import (
	"context"

	"github.com/poiesic/appscout/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds apps whose embedding is similar to the given vector.
	// Returns matches with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	// Returns ErrDimensionMismatch if stored vectors have a different length
	// than the query vector.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CatalogRepository provides operations for managing the app catalog.
type CatalogRepository interface {
	Repository
	// AddApps adds one or more apps to the catalog.
	// For apps with Id=0, derives a content-based ID from the store AppID
	// (falling back to the normalized name when AppID is empty).
	// Sets InsertedAt timestamp if not already set.
	// Returns the apps with IDs and timestamps populated.
	AddApps(ctx context.Context, apps ...*core.App) ([]*core.App, error)

	// UpdateApps updates existing apps.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any app doesn't exist.
	UpdateApps(ctx context.Context, apps ...*core.App) ([]*core.App, error)

	// DeleteApps removes apps by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any app doesn't exist.
	DeleteApps(ctx context.Context, ids ...core.ID) error

	// GetApp retrieves a single app by ID.
	// Returns ErrNotFound if the app doesn't exist.
	GetApp(ctx context.Context, id core.ID) (*core.App, error)

	// GetApps retrieves multiple apps by their IDs.
	// Returns only the apps that exist (no error for missing apps).
	GetApps(ctx context.Context, ids ...core.ID) ([]*core.App, error)

	// GetAppByAppID retrieves an app by its store identifier.
	// Returns ErrNotFound if no app carries that identifier.
	GetAppByAppID(ctx context.Context, appID string) (*core.App, error)

	// ListApps retrieves a page of apps in key order.
	// Pass limit <= 0 to retrieve everything from offset onward.
	ListApps(ctx context.Context, offset, limit int) ([]*core.App, error)

	// GetAppsByCategory retrieves apps whose category matches, case-insensitively.
	GetAppsByCategory(ctx context.Context, category string) ([]*core.App, error)

	// CountApps returns the number of apps in the catalog.
	CountApps(ctx context.Context) (int, error)
}
