package badger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/iconfinder/storage"
)

// Collection implements storage.Collection for BadgerDB.
// Entries are stored one key per document; queries scan the collection's
// key range in a read-only transaction.
type Collection struct {
	store  *Store
	name   string
	metric storage.Metric
}

var _ storage.Collection = (*Collection)(nil)

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Info reads the current collection metadata.
func (c *Collection) Info(ctx context.Context) (storage.CollectionInfo, error) {
	var info *storage.CollectionInfo
	err := c.store.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		info, err = readCollectionInfo(tx, c.name)
		return err
	}, false)
	if err != nil {
		return storage.CollectionInfo{}, err
	}
	return *info, nil
}

// Add stores entries keyed by ID in a single transaction.
// Cosine collections store unit-length vectors so queries reduce to a dot product.
func (c *Collection) Add(ctx context.Context, entries ...storage.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	added := 0
	err := c.store.backend.WithTx(func(tx *badger.Txn) error {
		info, err := readCollectionInfo(tx, c.name)
		if err != nil {
			return err
		}
		if info.Sealed {
			return storage.ErrCollectionSealed
		}

		for i := range entries {
			entry := entries[i]
			if entry.ID == "" {
				return fmt.Errorf("%w: entry without id", storage.ErrInvalidQuery)
			}
			if info.Dimensions == 0 {
				info.Dimensions = len(entry.Vector)
			}
			if len(entry.Vector) == 0 || len(entry.Vector) != info.Dimensions {
				return fmt.Errorf("%w: entry %q has %d dimensions, collection has %d",
					storage.ErrDimensionMismatch, entry.ID, len(entry.Vector), info.Dimensions)
			}
			if c.metric == storage.MetricCosine {
				entry.Vector = normalize(entry.Vector)
			}

			key := makeEntryKey(c.name, entry.ID)
			if _, err := tx.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
				info.Count++
			} else if err != nil {
				return err
			}
			if err := tx.Set(key, storage.MarshalEntry(&entry)); err != nil {
				return err
			}
			added++
		}

		if err := tx.Set(makeCollectionInfoKey(c.name), storage.MarshalCollectionInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}
	c.store.insertions.Add(int64(added))
	return nil
}

// Seal marks the collection read-only.
func (c *Collection) Seal(ctx context.Context) error {
	return c.store.backend.WithTx(func(tx *badger.Txn) error {
		info, err := readCollectionInfo(tx, c.name)
		if err != nil {
			return err
		}
		if info.Sealed {
			return nil
		}
		info.Sealed = true
		if err := tx.Set(makeCollectionInfoKey(c.name), storage.MarshalCollectionInfo(info)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Query returns up to k entries ranked by the collection metric, best first.
func (c *Collection) Query(ctx context.Context, vector []float32, k int) ([]storage.Match, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", storage.ErrInvalidQuery, k)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", storage.ErrInvalidQuery)
	}
	if c.metric == storage.MetricCosine {
		vector = normalize(vector)
	}

	var results []storage.Match
	err := c.store.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeEntryPrefix(c.name)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry *storage.Entry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if len(entry.Vector) != len(vector) {
				return fmt.Errorf("%w: query has %d dimensions, entry %q has %d",
					storage.ErrDimensionMismatch, len(vector), entry.ID, len(entry.Vector))
			}

			results = append(results, storage.Match{
				ID:    entry.ID,
				Score: dotProduct(vector, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b storage.Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// dotProduct calculates the dot product of two equal-length vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// normalize returns a unit-length copy of v. Zero vectors stay zero.
func normalize(v []float32) []float32 {
	var magnitude float64
	for _, val := range v {
		magnitude += float64(val) * float64(val)
	}
	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	magnitude = math.Sqrt(magnitude)
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}
