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


// Package iconfinder wires the catalog, the vector index and the tiered
// searcher into a single Finder, constructed once per process.
package iconfinder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/iconfinder/ai"
	"github.com/poiesic/iconfinder/ai/openai"
	"github.com/poiesic/iconfinder/catalog"
	"github.com/poiesic/iconfinder/core"
	"github.com/poiesic/iconfinder/index"
	"github.com/poiesic/iconfinder/search"
	"github.com/poiesic/iconfinder/storage"
	"github.com/poiesic/iconfinder/storage/badger"
)

// DefaultIndexPath is where the BadgerDB index directory lives unless configured.
const DefaultIndexPath = "data/index"

// Finder answers icon queries. It is safe for concurrent use.
type Finder struct {
	searcher  *search.Searcher
	index     *index.Index
	store     storage.Store
	ownStore  bool
	provider  ai.AIProvider
	ownProv   bool
	logger    *slog.Logger
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Finder.
type Option func(*options) error

type options struct {
	catalogPath string
	catalogFS   fs.FS
	indexPath   string
	inMemory    bool
	store       storage.Store
	provider    ai.AIProvider
	aiConfig    *ai.Config
	collection  string
	batchSize   int
	searchOpts  []search.Option
	logger      *slog.Logger
}

// WithCatalogPath reads the catalog from a file.
// Default is catalog.DefaultPath.
func WithCatalogPath(path string) Option {
	return func(o *options) error {
		o.catalogPath = path
		o.catalogFS = nil
		return nil
	}
}

// WithCatalogFS reads the catalog named name from fsys.
func WithCatalogFS(fsys fs.FS, name string) Option {
	return func(o *options) error {
		o.catalogFS = fsys
		o.catalogPath = name
		return nil
	}
}

// WithIndexPath sets the BadgerDB directory holding the vector index.
// Default is DefaultIndexPath.
func WithIndexPath(path string) Option {
	return func(o *options) error {
		o.indexPath = path
		return nil
	}
}

// WithInMemoryIndex keeps the vector index in memory. It is rebuilt on
// every start.
func WithInMemoryIndex() Option {
	return func(o *options) error {
		o.inMemory = true
		return nil
	}
}

// WithStore uses an existing store for the index. The caller keeps
// ownership and must close it after the Finder.
func WithStore(store storage.Store) Option {
	return func(o *options) error {
		o.store = store
		return nil
	}
}

// WithProvider uses an existing AI provider. The caller keeps ownership.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) error {
		o.provider = provider
		return nil
	}
}

// WithAIConfig configures the OpenAI-compatible provider the Finder creates
// when none is given. Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) error {
		o.aiConfig = config
		return nil
	}
}

// WithCollectionName overrides the index collection name.
func WithCollectionName(name string) Option {
	return func(o *options) error {
		if err := storage.ValidateName(name); err != nil {
			return err
		}
		o.collection = name
		return nil
	}
}

// WithBatchSize sets how many documents are embedded per request while
// building the index.
func WithBatchSize(size int) Option {
	return func(o *options) error {
		o.batchSize = size
		return nil
	}
}

// WithPoolSize bounds concurrent vector queries.
func WithPoolSize(size int) Option {
	return func(o *options) error {
		o.searchOpts = append(o.searchOpts, search.WithPoolSize(size))
		return nil
	}
}

// WithQueryTimeout bounds how long a search waits for a vector query.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return search.ErrInvalidQueryTimeout
		}
		o.searchOpts = append(o.searchOpts, search.WithQueryTimeout(timeout))
		return nil
	}
}

// WithMonitor observes searches.
func WithMonitor(monitor search.Monitor) Option {
	return func(o *options) error {
		o.searchOpts = append(o.searchOpts, search.WithMonitor(monitor))
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// New loads the catalog, bootstraps the vector index and builds the searcher.
// Catalog, embedding and index problems never fail construction: they are
// logged once and select a more degraded search tier for the life of the
// Finder. Only invalid options return an error.
func New(ctx context.Context, opts ...Option) (*Finder, error) {
	o := &options{
		catalogPath: catalog.DefaultPath,
		indexPath:   DefaultIndexPath,
		collection:  index.DefaultCollectionName,
		batchSize:   64,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	f := &Finder{logger: o.logger.With("component", "iconfinder")}

	records := f.loadCatalog(o)
	if len(core.DocumentsFromRecords(records)) > 0 {
		idx, err := f.bootstrap(ctx, o, records)
		if err != nil {
			f.logger.Error("vector index unavailable, serving keyword matches", "err", err)
		} else {
			f.index = idx
		}
	}

	var vectors search.VectorIndex
	if f.index != nil {
		vectors = f.index
	}
	searchOpts := append([]search.Option{search.WithLogger(o.logger)}, o.searchOpts...)
	searcher, err := search.NewSearcher(records, vectors, searchOpts...)
	if err != nil {
		f.release()
		return nil, err
	}
	f.searcher = searcher
	return f, nil
}

func (f *Finder) loadCatalog(o *options) []core.IconRecord {
	var records []core.IconRecord
	var err error
	if o.catalogFS != nil {
		records, err = catalog.LoadFS(o.catalogFS, o.catalogPath)
	} else {
		records, err = catalog.Load(o.catalogPath)
	}
	if err != nil {
		f.logger.Error("catalog unavailable, serving the default icon only", "path", o.catalogPath, "err", err)
		return nil
	}
	if len(records) == 0 {
		f.logger.Warn("catalog has no eligible icons, serving the default icon only", "path", o.catalogPath)
	}
	return records
}

func (f *Finder) bootstrap(ctx context.Context, o *options, records []core.IconRecord) (*index.Index, error) {
	f.provider = o.provider
	if f.provider == nil {
		config := o.aiConfig
		if config == nil {
			config = ai.DefaultConfig()
		}
		provider, err := openai.NewProvider(config)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %w", core.ErrIndexUnavailable, core.ErrConfigurationUnavailable, err)
		}
		f.provider = provider
		f.ownProv = true
	}

	f.store = o.store
	if f.store == nil {
		var err error
		if o.inMemory {
			f.store, err = badger.NewMemoryStore()
		} else {
			f.store, err = badger.OpenStore(o.indexPath)
		}
		if err != nil {
			f.store = nil
			return nil, fmt.Errorf("%w: opening store: %w", core.ErrIndexUnavailable, err)
		}
		f.ownStore = true
	}

	bootstrapper, err := index.NewBootstrapper(f.store, f.provider.Embedder(),
		index.WithCollectionName(o.collection),
		index.WithFingerprint(core.Fingerprint(records)),
		index.WithBatchSize(o.batchSize),
		index.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIndexUnavailable, err)
	}
	return bootstrapper.EnsureIndex(ctx, core.DocumentsFromRecords(records))
}

// SearchIcons returns between 1 and k static icon paths for query.
// It never fails; k < 1 is treated as 1.
func (f *Finder) SearchIcons(ctx context.Context, query string, k int) []string {
	return f.searcher.Search(ctx, query, k)
}

// Tier returns the search tier selected at construction.
func (f *Finder) Tier() core.Tier {
	return f.searcher.Tier()
}

// IndexInfo describes the vector index in use, if any.
func (f *Finder) IndexInfo() (storage.CollectionInfo, bool) {
	if f.index == nil {
		return storage.CollectionInfo{}, false
	}
	return f.index.Info(), true
}

// Close releases the worker pool, then the provider and store the Finder
// created. It is safe to call more than once.
func (f *Finder) Close() error {
	f.closeOnce.Do(func() {
		if f.searcher != nil {
			f.searcher.Release()
		}
		f.closeErr = f.release()
	})
	return f.closeErr
}

func (f *Finder) release() error {
	var errs []error
	if f.ownProv && f.provider != nil {
		if err := f.provider.Close(); err != nil {
			f.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if f.ownStore && f.store != nil {
		if err := f.store.Close(); err != nil {
			f.logger.Error("error closing index store", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
