package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	return &CatalogRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the backend owns the database lifecycle.
func (r *CatalogRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *CatalogRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddApps adds one or more apps to the catalog.
func (r *CatalogRepository) AddApps(ctx context.Context, apps ...*core.App) ([]*core.App, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, app := range apps {
			// Content-based ID: stable across re-ingestion of the same app.
			if app.Id == 0 {
				app.Id = core.IDFromContent(core.IdentityKey(app.AppID, app.Name))
			}

			app.InsertedAt = time.Now().UTC()
			app.UpdatedAt = app.InsertedAt

			// Store primary record
			key := makeAppKey(app.Id)
			value := storage.MarshalApp(app)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update store-identifier index
			if app.AppID != "" {
				if err := tx.Set(makeStoreIDKey(app.AppID), storage.MarshalID(app.Id)); err != nil {
					return err
				}
			}

			// Update category index
			if app.Category != "" {
				if err := tx.Set(makeCategoryKey(app.Category, app.Id), storage.MarshalID(app.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return apps, err
}

// UpdateApps updates existing apps.
func (r *CatalogRepository) UpdateApps(ctx context.Context, apps ...*core.App) ([]*core.App, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, app := range apps {
			key := makeAppKey(app.Id)

			// Read old record to detect index changes
			old, err := r.readApp(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			app.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalApp(app)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update store-identifier index if the AppID changed
			if old.AppID != app.AppID {
				if old.AppID != "" {
					if err := tx.Delete(makeStoreIDKey(old.AppID)); err != nil {
						return err
					}
				}
				if app.AppID != "" {
					if err := tx.Set(makeStoreIDKey(app.AppID), storage.MarshalID(app.Id)); err != nil {
						return err
					}
				}
			}

			// Update category index if the category changed
			if !strings.EqualFold(old.Category, app.Category) {
				if old.Category != "" {
					if err := tx.Delete(makeCategoryKey(old.Category, old.Id)); err != nil {
						return err
					}
				}
				if app.Category != "" {
					if err := tx.Set(makeCategoryKey(app.Category, app.Id), storage.MarshalID(app.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return apps, err
}

// DeleteApps removes apps by their IDs.
func (r *CatalogRepository) DeleteApps(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeAppKey(id)

			// Read record to get metadata for index cleanup
			app, err := r.readApp(tx, key)
			if err != nil {
				return err
			}
			if app == nil {
				return storage.ErrNotFound
			}

			if app.AppID != "" {
				if err := tx.Delete(makeStoreIDKey(app.AppID)); err != nil {
					return err
				}
			}
			if app.Category != "" {
				if err := tx.Delete(makeCategoryKey(app.Category, app.Id)); err != nil {
					return err
				}
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetApp retrieves a single app by ID.
func (r *CatalogRepository) GetApp(ctx context.Context, id core.ID) (*core.App, error) {
	var result *core.App
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeAppKey(id)
		var err error
		result, err = r.readApp(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetApps retrieves multiple apps by their IDs.
func (r *CatalogRepository) GetApps(ctx context.Context, ids ...core.ID) ([]*core.App, error) {
	var result []*core.App
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeAppKey(id)
			app, err := r.readApp(tx, key)
			if err != nil {
				return err
			}
			if app != nil {
				result = append(result, app)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAppByAppID retrieves an app by its store identifier.
func (r *CatalogRepository) GetAppByAppID(ctx context.Context, appID string) (*core.App, error) {
	var result *core.App
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeStoreIDKey(appID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readApp(tx, makeAppKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListApps retrieves a page of apps in key order.
func (r *CatalogRepository) ListApps(ctx context.Context, offset, limit int) ([]*core.App, error) {
	var results []*core.App
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(appRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		skipped := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(results) >= limit {
				break
			}

			var app *core.App
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				app, err = storage.UnmarshalApp(val)
				return err
			}); err != nil {
				return err
			}
			if app != nil {
				results = append(results, app)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetAppsByCategory retrieves apps whose category matches, case-insensitively.
func (r *CatalogRepository) GetAppsByCategory(ctx context.Context, category string) ([]*core.App, error) {
	var results []*core.App
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialCategoryKey(category)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our category prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			app, err := r.readApp(tx, makeAppKey(id))
			if err != nil {
				return err
			}
			if app != nil {
				results = append(results, app)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountApps returns the number of apps in the catalog.
func (r *CatalogRepository) CountApps(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(appRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readApp reads an app from the transaction.
func (r *CatalogRepository) readApp(tx *badger.Txn, key []byte) (*core.App, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var app *core.App
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		app, unmarshalErr = storage.UnmarshalApp(val)
		return unmarshalErr
	})
	return app, err
}
