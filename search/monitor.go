package search

import (
	"time"

	"github.com/poiesic/iconfinder/core"
)

// FallbackReason says why a vector query gave way to keyword matching.
type FallbackReason string

const (
	FallbackError    FallbackReason = "error"
	FallbackEmpty    FallbackReason = "empty"
	FallbackTimeout  FallbackReason = "timeout"
	FallbackOverload FallbackReason = "overload"
	FallbackCanceled FallbackReason = "canceled"
)

// Monitor observes the searcher. Implementations must be safe for
// concurrent use; callbacks run on the search path and should be fast.
type Monitor interface {
	// TierSelected is called once, when the searcher is constructed.
	TierSelected(tier core.Tier)
	// Served is called once per search with the tier that produced the result.
	Served(tier core.Tier, elapsed time.Duration)
	// VectorFallback is called when a vector query is abandoned for this call.
	VectorFallback(reason FallbackReason)
	// VectorQueryDuration is called when a vector query finishes, even if
	// the caller stopped waiting for it.
	VectorQueryDuration(elapsed time.Duration)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) TierSelected(_ core.Tier) {}
func (n *noopMonitor) Served(_ core.Tier, _ time.Duration) {}
func (n *noopMonitor) VectorFallback(_ FallbackReason) {}
func (n *noopMonitor) VectorQueryDuration(_ time.Duration) {}
