package badger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/iconfinder/storage"
)

// Store implements storage.Store on top of BadgerDB.
type Store struct {
	backend    *Backend
	ownBackend bool
	insertions atomic.Int64
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a store over an already open backend.
// Closing the store does not close the backend.
func NewStore(backend *Backend) *Store {
	return &Store{backend: backend}
}

// OpenStore opens (or creates) a BadgerDB directory and returns a store
// that owns it.
//
// Returns storage.Store interface to enforce abstraction.
func OpenStore(path string) (storage.Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Store{backend: backend, ownBackend: true}, nil
}

// Close closes the backend if the store opened it.
func (s *Store) Close() error {
	if !s.ownBackend {
		return nil
	}
	return s.backend.Close()
}

// Insertions returns the number of entries written through this store.
func (s *Store) Insertions() int {
	return int(s.insertions.Load())
}

// GetCollection opens an existing collection.
func (s *Store) GetCollection(ctx context.Context, name string) (storage.Collection, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	var info *storage.CollectionInfo
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		info, err = readCollectionInfo(tx, name)
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	col := &Collection{store: s, name: name, metric: info.Metric}
	if !info.Sealed {
		return col, storage.ErrCollectionIncomplete
	}
	return col, nil
}

// CreateCollection creates an empty, unsealed collection.
func (s *Store) CreateCollection(ctx context.Context, req storage.CollectionInfo) (storage.Collection, error) {
	if err := storage.ValidateName(req.Name); err != nil {
		return nil, err
	}
	if !req.Metric.Valid() {
		return nil, fmt.Errorf("%w: unsupported metric %q", storage.ErrInvalidQuery, req.Metric)
	}

	info := &storage.CollectionInfo{
		Name:           req.Name,
		Metric:         req.Metric,
		EmbeddingModel: req.EmbeddingModel,
		Fingerprint:    req.Fingerprint,
		CreatedAt:      time.Now().UTC(),
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCollectionInfoKey(info.Name)
		_, err := tx.Get(key)
		if err == nil {
			return storage.ErrCollectionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := tx.Set(key, storage.MarshalCollectionInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if errors.Is(err, badger.ErrConflict) {
		// Another transaction created it concurrently.
		return nil, storage.ErrCollectionExists
	}
	if err != nil {
		return nil, err
	}

	return &Collection{store: s, name: info.Name, metric: info.Metric}, nil
}

// DeleteCollection removes the collection metadata and all of its entries.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCollectionInfoKey(name)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}
	return s.backend.DropPrefix(makeEntryPrefix(name))
}

// readCollectionInfo reads collection metadata, mapping a missing key to storage.ErrNotFound.
func readCollectionInfo(tx *badger.Txn, name string) (*storage.CollectionInfo, error) {
	item, err := tx.Get(makeCollectionInfoKey(name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	var info *storage.CollectionInfo
	err = item.Value(func(val []byte) error {
		var err error
		info, err = storage.UnmarshalCollectionInfo(val)
		return err
	})
	return info, err
}
