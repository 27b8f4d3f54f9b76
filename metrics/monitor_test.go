package metrics

import (
	"testing"
	"time"

	"github.com/poiesic/iconfinder/core"
	"github.com/poiesic/iconfinder/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonitor(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMonitor(reg)
	require.NoError(t, err)

	_, err = NewMonitor(reg)
	assert.Error(t, err, "collectors cannot be registered twice")

	m, err := NewMonitor(nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestMonitor_RecordsSearches(t *testing.T) {
	m, err := NewMonitor(prometheus.NewRegistry())
	require.NoError(t, err)

	m.TierSelected(core.TierVector)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tier))

	m.Served(core.TierVector, 10*time.Millisecond)
	m.Served(core.TierKeyword, time.Millisecond)
	m.Served(core.TierKeyword, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("vector")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues("keyword")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.searchDuration))

	m.VectorFallback(search.FallbackTimeout)
	m.VectorFallback(search.FallbackOverload)
	m.VectorFallback(search.FallbackTimeout)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("overload")))

	m.VectorQueryDuration(50 * time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.vectorDuration))
}

func TestMonitor_DrivenBySearcher(t *testing.T) {
	m, err := NewMonitor(prometheus.NewRegistry())
	require.NoError(t, err)

	records := []core.IconRecord{{ID: "home-bold", Tags: []string{"house"}}}
	s, err := search.NewSearcher(records, nil, search.WithMonitor(m))
	require.NoError(t, err)
	defer s.Release()

	s.Search(t.Context(), "house", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tier))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("keyword")))
}
