package storage

import (
	"context"
	"strings"
	"time"
)

// Metric selects how a collection ranks stored vectors against a query.
type Metric string

const (
	// MetricCosine ranks by the cosine of the angle between vectors.
	MetricCosine Metric = "cosine"
	// MetricDot ranks by the raw dot product.
	MetricDot Metric = "dot"
)

// Valid reports whether m is a supported metric.
func (m Metric) Valid() bool {
	return m == MetricCosine || m == MetricDot
}

// CollectionInfo describes a persisted collection.
type CollectionInfo struct {
	Name   string
	Metric Metric
	// EmbeddingModel identifies the embedding function the vectors came from.
	EmbeddingModel string
	// Fingerprint identifies the catalog version the collection was built from.
	Fingerprint string
	// Dimensions is fixed by the first entry added. Zero while empty.
	Dimensions int
	Count      int
	// Sealed is set once population finished. Sealed collections are read-only.
	Sealed    bool
	CreatedAt time.Time
}

// Entry is one stored document and its embedding.
type Entry struct {
	ID     string
	Text   string
	Vector []float32
}

// Match is a single ranked query result.
type Match struct {
	ID    string
	Score float32
}

// ValidateName checks that a collection name is usable as a key component.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, ": \t\n") {
		return ErrInvalidName
	}
	return nil
}

// Collection is a named set of entries queryable by vector similarity.
// Implementations must be safe for concurrent queries.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// Info reads the current collection metadata.
	Info(ctx context.Context) (CollectionInfo, error)

	// Add stores entries keyed by ID. Re-adding an ID replaces it.
	// Returns ErrCollectionSealed once the collection is sealed and
	// ErrDimensionMismatch for vectors of the wrong size.
	Add(ctx context.Context, entries ...Entry) error

	// Seal marks population as finished.
	Seal(ctx context.Context) error

	// Query returns up to k entries ranked by the collection metric, best first.
	// Equal scores are ordered by ID so results are deterministic.
	Query(ctx context.Context, vector []float32, k int) ([]Match, error)
}

// Store holds named collections.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// GetCollection opens an existing collection.
	// Returns ErrNotFound if it does not exist and ErrCollectionIncomplete
	// (alongside the handle) if it was never sealed.
	GetCollection(ctx context.Context, name string) (Collection, error)

	// CreateCollection creates an empty, unsealed collection described by info.
	// Only Name, Metric, EmbeddingModel and Fingerprint are taken from info.
	// Returns ErrCollectionExists if the name is taken.
	CreateCollection(ctx context.Context, info CollectionInfo) (Collection, error)

	// DeleteCollection removes a collection and all of its entries.
	// Returns ErrNotFound if it does not exist.
	DeleteCollection(ctx context.Context, name string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
