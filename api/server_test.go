package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poiesic/iconfinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	tier      core.Tier
	lastQuery string
	lastK     int
	panics    bool
}

func (f *fakeSearcher) SearchIcons(_ context.Context, query string, k int) []string {
	if f.panics {
		panic("boom")
	}
	f.lastQuery, f.lastK = query, k
	paths := make([]string, k)
	for i := range paths {
		paths[i] = core.IconPath("home-bold")
	}
	return paths
}

func (f *fakeSearcher) Tier() core.Tier {
	return f.tier
}

func serve(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rr
}

func TestSearchIcons(t *testing.T) {
	searcher := &fakeSearcher{tier: core.TierVector}
	router := NewServer(searcher, nil).Router()

	t.Run("default k", func(t *testing.T) {
		rr := serve(t, router, "/api/v1/icons/search?query=house")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

		var resp SearchResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, []string{"/static/icons/bold/home-bold.svg"}, resp.Icons)
		assert.Equal(t, "house", searcher.lastQuery)
		assert.Equal(t, 1, searcher.lastK)
	})

	t.Run("explicit k", func(t *testing.T) {
		rr := serve(t, router, "/api/v1/icons/search?query=growth+chart&k=3")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp SearchResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.Icons, 3)
		assert.Equal(t, "growth chart", searcher.lastQuery)
	})

	badRequests := map[string]string{
		"missing query": "/api/v1/icons/search",
		"blank query":   "/api/v1/icons/search?query=%20%20",
		"k not integer": "/api/v1/icons/search?query=house&k=many",
		"k zero":        "/api/v1/icons/search?query=house&k=0",
		"k too large":   "/api/v1/icons/search?query=house&k=51",
	}
	for name, target := range badRequests {
		t.Run(name, func(t *testing.T) {
			rr := serve(t, router, target)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "validation_failed", resp.Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		tier   core.Tier
		status string
	}{
		{core.TierVector, "ok"},
		{core.TierKeyword, "degraded"},
		{core.TierDefault, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			rr := serve(t, NewServer(&fakeSearcher{tier: tt.tier}, nil).Router(), "/healthz")
			require.Equal(t, http.StatusOK, rr.Code)

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.tier.String(), resp.Tier)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewServer(&fakeSearcher{tier: core.TierKeyword}, nil).Router()
	serve(t, router, "/api/v1/icons/search?query=house")

	rr := serve(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "iconfinder_http_requests_total"))
}

func TestRecoverer(t *testing.T) {
	router := NewServer(&fakeSearcher{panics: true}, nil).Router()
	rr := serve(t, router, "/api/v1/icons/search?query=house")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "internal_error", resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	rr := serve(t, NewServer(&fakeSearcher{}, nil).Router(), "/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
