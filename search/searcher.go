package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/iconfinder/core"
)

// DefaultQueryTimeout bounds how long a search waits for the vector index.
const DefaultQueryTimeout = 3 * time.Second

// VectorIndex answers nearest-neighbor queries with icon IDs, best first.
// *index.Index satisfies it.
type VectorIndex interface {
	Query(ctx context.Context, text string, k int) ([]string, error)
}

// Searcher resolves queries to icon paths using the most capable tier it was
// constructed with, falling back per call when the vector index misbehaves.
type Searcher struct {
	tier         core.Tier
	keyword      *KeywordMatcher
	eligible     map[string]struct{}
	index        VectorIndex
	pool         *ants.Pool
	poolSize     int
	queryTimeout time.Duration
	monitor      Monitor
	logger       *slog.Logger
	releaseOnce  sync.Once
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets how many vector queries may run at once. Queries beyond
// that fall back to keyword matching instead of queueing.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithQueryTimeout bounds how long a search waits for a vector query.
// Default is DefaultQueryTimeout.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout <= 0 {
			return ErrInvalidQueryTimeout
		}
		s.queryTimeout = timeout
		return nil
	}
}

// WithMonitor sets a monitor that observes tier selection and fallbacks.
func WithMonitor(monitor Monitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over the catalog records. index may be nil
// when no vector index could be bootstrapped. The tier is fixed here:
// no eligible records means TierDefault, no index means TierKeyword,
// otherwise TierVector.
func NewSearcher(records []core.IconRecord, index VectorIndex, opts ...Option) (*Searcher, error) {
	s := &Searcher{
		keyword:      NewKeywordMatcher(records),
		index:        index,
		poolSize:     max(runtime.NumCPU(), 1),
		queryTimeout: DefaultQueryTimeout,
		monitor:      &noopMonitor{},
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "search")

	switch {
	case s.keyword.Len() == 0:
		s.tier = core.TierDefault
	case index == nil:
		s.tier = core.TierKeyword
	default:
		s.tier = core.TierVector
	}

	if s.tier == core.TierVector {
		s.eligible = make(map[string]struct{}, s.keyword.Len())
		for _, e := range s.keyword.entries {
			s.eligible[e.id] = struct{}{}
		}
		pool, err := ants.NewPool(s.poolSize, ants.WithNonblocking(true))
		if err != nil {
			return nil, err
		}
		s.pool = pool
	}

	s.logger.Info("search tier selected", "tier", s.tier, "icons", s.keyword.Len())
	s.monitor.TierSelected(s.tier)
	return s, nil
}

// Tier returns the tier selected at construction.
func (s *Searcher) Tier() core.Tier {
	return s.tier
}

// Search returns between 1 and k icon paths for query. k < 1 is treated
// as 1. Search never fails: vector problems degrade to keyword matching
// for this call only, and keyword matching degrades to the defaults.
func (s *Searcher) Search(ctx context.Context, query string, k int) []string {
	start := time.Now()
	k = max(k, 1)

	ids, served := s.resolve(ctx, query, k)
	s.monitor.Served(served, time.Since(start))
	return core.IconPaths(ids)
}

func (s *Searcher) resolve(ctx context.Context, query string, k int) ([]string, core.Tier) {
	if s.tier == core.TierDefault {
		return []string{UltimateDefault}, core.TierDefault
	}

	if s.tier == core.TierVector && strings.TrimSpace(query) != "" {
		ids, reason, err := s.queryVector(ctx, query, k)
		if err == nil {
			return ids, core.TierVector
		}
		s.logger.Debug("vector search fell back to keyword matching",
			"query", query, "reason", reason, "err", err)
		s.monitor.VectorFallback(reason)
	}

	return s.keyword.Match(query, k), core.TierKeyword
}

type vectorResult struct {
	ids []string
	err error
}

// queryVector runs the index query on the pool and waits for it, the
// caller's context or the query timeout. A query the caller stopped waiting
// for still runs to completion and its result is dropped.
func (s *Searcher) queryVector(ctx context.Context, query string, k int) ([]string, FallbackReason, error) {
	done := make(chan vectorResult, 1)
	workCtx := context.WithoutCancel(ctx)

	err := s.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				done <- vectorResult{err: fmt.Errorf("%w: panic: %v", core.ErrQueryFailure, r)}
			}
		}()
		start := time.Now()
		ids, err := s.index.Query(workCtx, query, k)
		s.monitor.VectorQueryDuration(time.Since(start))
		done <- vectorResult{ids: ids, err: err}
	})
	if errors.Is(err, ants.ErrPoolOverload) {
		return nil, FallbackOverload, fmt.Errorf("%w: %w", core.ErrQueryFailure, err)
	}
	if err != nil {
		return nil, FallbackError, fmt.Errorf("%w: %w", core.ErrQueryFailure, err)
	}

	timer := time.NewTimer(s.queryTimeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, FallbackError, r.err
		}
		ids := s.filterEligible(r.ids, k)
		if len(ids) == 0 {
			return nil, FallbackEmpty, ErrEmptyResult
		}
		return ids, "", nil
	case <-timer.C:
		return nil, FallbackTimeout, fmt.Errorf("%w: %w after %s", core.ErrQueryFailure, ErrQueryTimeout, s.queryTimeout)
	case <-ctx.Done():
		return nil, FallbackCanceled, fmt.Errorf("%w: %w", core.ErrQueryFailure, ctx.Err())
	}
}

// filterEligible drops IDs outside the eligible set and duplicates,
// keeping rank order, and truncates to k.
func (s *Searcher) filterEligible(ids []string, k int) []string {
	out := make([]string, 0, min(len(ids), k))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if len(out) == k {
			break
		}
		if _, ok := s.eligible[id]; !ok {
			s.logger.Debug("dropping ineligible vector match", "id", id)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Release stops the worker pool, waiting briefly for running queries.
// The searcher keeps answering afterwards, from keyword matching only.
func (s *Searcher) Release() {
	if s.pool == nil {
		return
	}
	s.releaseOnce.Do(func() {
		if err := s.pool.ReleaseTimeout(time.Second); err != nil {
			s.logger.Warn("vector queries still running at release", "err", err)
		}
	})
}
