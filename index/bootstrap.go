package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/iconfinder/ai"
	"github.com/poiesic/iconfinder/core"
	"github.com/poiesic/iconfinder/storage"
)

// DefaultCollectionName is the fixed name the icon collection is stored under.
const DefaultCollectionName = "icons"

// Bootstrapper ensures the icon collection exists and is populated exactly once.
type Bootstrapper struct {
	store       storage.Store
	embedder    ai.Embedder
	name        string
	fingerprint string
	batchSize   int
	maxRetries  int
	retryDelay  time.Duration
	logger      *slog.Logger

	mu         sync.Mutex
	handle     *Index
	prepared   bool
	prepareErr error
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper) error

// WithCollectionName overrides the collection name.
// Default is DefaultCollectionName.
func WithCollectionName(name string) Option {
	return func(b *Bootstrapper) error {
		if err := storage.ValidateName(name); err != nil {
			return err
		}
		b.name = name
		return nil
	}
}

// WithFingerprint tags newly built collections with the catalog fingerprint.
func WithFingerprint(fingerprint string) Option {
	return func(b *Bootstrapper) error {
		b.fingerprint = fingerprint
		return nil
	}
}

// WithBatchSize sets how many documents are embedded and written together.
// Default is 64.
func WithBatchSize(size int) Option {
	return func(b *Bootstrapper) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithRetry sets the attempts and base backoff delay for each embedding batch.
// Default is 3 attempts starting at 500ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Bootstrapper) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		b.maxRetries = maxAttempts
		b.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrapper) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBootstrapper creates a bootstrapper over store using embedder for all vectors.
func NewBootstrapper(store storage.Store, embedder ai.Embedder, opts ...Option) (*Bootstrapper, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &Bootstrapper{
		store:      store,
		embedder:   embedder,
		name:       DefaultCollectionName,
		batchSize:  64,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	b.logger = b.logger.With("component", "index", "collection", b.name)
	return b, nil
}

// EnsureIndex returns a handle on the icon collection, creating and
// populating it from docs only if no sealed collection exists yet.
// Concurrent and repeated calls share one handle. All failures wrap
// core.ErrIndexUnavailable.
func (b *Bootstrapper) EnsureIndex(ctx context.Context, docs []core.Document) (*Index, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle != nil {
		return b.handle, nil
	}

	if err := b.prepare(ctx); err != nil {
		return nil, err
	}

	col, err := b.store.GetCollection(ctx, b.name)
	switch {
	case err == nil:
		return b.open(ctx, col)
	case errors.Is(err, storage.ErrCollectionIncomplete):
		b.logger.Warn("dropping collection left incomplete by an earlier build")
		if err := b.store.DeleteCollection(ctx, b.name); err != nil {
			return nil, unavailable(fmt.Errorf("dropping incomplete collection: %w", err))
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, unavailable(fmt.Errorf("opening collection: %w", err))
	}

	return b.build(ctx, docs)
}

// prepare runs the embedder's one-time preparation. A failure is remembered
// so later calls fail fast without retrying.
func (b *Bootstrapper) prepare(ctx context.Context) error {
	if !b.prepared {
		b.prepared = true
		if p, ok := b.embedder.(ai.Preparer); ok {
			if err := p.Prepare(ctx); err != nil {
				b.prepareErr = configUnavailable(err)
			}
		}
	}
	return b.prepareErr
}

// open adopts an existing sealed collection without touching its contents.
func (b *Bootstrapper) open(ctx context.Context, col storage.Collection) (*Index, error) {
	info, err := col.Info(ctx)
	if err != nil {
		return nil, unavailable(fmt.Errorf("reading collection info: %w", err))
	}
	if info.EmbeddingModel != b.embedder.Model() {
		return nil, unavailable(fmt.Errorf("%w: stored %q, configured %q",
			ErrEmbedderMismatch, info.EmbeddingModel, b.embedder.Model()))
	}
	if b.fingerprint != "" && info.Fingerprint != b.fingerprint {
		b.logger.Warn("catalog changed since the collection was built; reusing it unchanged",
			"stored", info.Fingerprint, "current", b.fingerprint)
	}

	b.logger.Info("reusing existing collection", "documents", info.Count, "model", info.EmbeddingModel)
	b.handle = &Index{collection: col, embedder: b.embedder, info: info}
	return b.handle, nil
}

// build creates, populates and seals a new collection. A failed build
// removes what it wrote so the next process start begins clean.
func (b *Bootstrapper) build(ctx context.Context, docs []core.Document) (*Index, error) {
	eligible := make([]core.Document, 0, len(docs))
	for _, doc := range docs {
		if core.VariantOf(doc.ID) != core.EligibleVariant {
			b.logger.Warn("refusing to index ineligible document", "id", doc.ID)
			continue
		}
		eligible = append(eligible, doc)
	}
	if len(eligible) == 0 {
		return nil, unavailable(ErrNoDocuments)
	}

	col, err := b.store.CreateCollection(ctx, storage.CollectionInfo{
		Name:           b.name,
		Metric:         storage.MetricCosine,
		EmbeddingModel: b.embedder.Model(),
		Fingerprint:    b.fingerprint,
	})
	if err != nil {
		return nil, unavailable(fmt.Errorf("creating collection: %w", err))
	}

	start := time.Now()
	b.logger.Info("building collection", "documents", len(eligible), "batchSize", b.batchSize)
	if err := b.populate(ctx, col, eligible); err != nil {
		b.discard(col)
		return nil, err
	}
	if err := col.Seal(ctx); err != nil {
		b.discard(col)
		return nil, unavailable(fmt.Errorf("sealing collection: %w", err))
	}

	info, err := col.Info(ctx)
	if err != nil {
		return nil, unavailable(fmt.Errorf("reading collection info: %w", err))
	}
	b.logger.Info("collection built", "documents", info.Count, "dimensions", info.Dimensions,
		"elapsed", time.Since(start))
	b.handle = &Index{collection: col, embedder: b.embedder, info: info}
	return b.handle, nil
}

func (b *Bootstrapper) populate(ctx context.Context, col storage.Collection, docs []core.Document) error {
	for start := 0; start < len(docs); start += b.batchSize {
		end := min(start+b.batchSize, len(docs))
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = doc.Text
		}

		var vectors [][]float32
		err := retryWithBackoff(ctx, b.logger, func() error {
			var err error
			vectors, err = b.embedder.EmbedTexts(ctx, texts)
			return err
		}, b.maxRetries, b.retryDelay)
		if err != nil {
			return configUnavailable(fmt.Errorf("embedding documents %d-%d after %d attempts: %w",
				start, end, b.maxRetries, err))
		}
		if len(vectors) != len(batch) {
			return configUnavailable(fmt.Errorf("embedding count mismatch: expected %d, got %d",
				len(batch), len(vectors)))
		}

		entries := make([]storage.Entry, len(batch))
		for i, doc := range batch {
			entries[i] = storage.Entry{ID: doc.ID, Text: doc.Text, Vector: vectors[i]}
		}
		if err := col.Add(ctx, entries...); err != nil {
			return unavailable(fmt.Errorf("adding documents %d-%d: %w", start, end, err))
		}
		b.logger.Debug("indexed batch", "from", start, "to", end)
	}
	return nil
}

// discard deletes a partially built collection. It runs on a fresh context
// so a cancelled build still cleans up after itself.
func (b *Bootstrapper) discard(col storage.Collection) {
	if err := b.store.DeleteCollection(context.Background(), col.Name()); err != nil {
		b.logger.Error("failed to discard partial collection", "err", err)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", core.ErrIndexUnavailable, err)
}

func configUnavailable(err error) error {
	return fmt.Errorf("%w: %w: %w", core.ErrIndexUnavailable, core.ErrConfigurationUnavailable, err)
}
