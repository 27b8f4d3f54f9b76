// Package api exposes icon search over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/poiesic/iconfinder/core"
	"github.com/poiesic/iconfinder/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxK caps how many icons one request may ask for.
const MaxK = 50

// IconSearcher is the search surface the router serves.
// *iconfinder.Finder satisfies it.
type IconSearcher interface {
	SearchIcons(ctx context.Context, query string, k int) []string
	Tier() core.Tier
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Icons []string `json:"icons"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
	Tier   string `json:"tier"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server handles the HTTP routes.
type Server struct {
	searcher IconSearcher
	logger   *slog.Logger
}

// NewServer creates a server over searcher. A nil logger falls back to slog.Default().
func NewServer(searcher IconSearcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{searcher: searcher, logger: logger.With("component", "api")}
}

// Router returns the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/icons/search", s.SearchIcons)
	})
	return r
}

// SearchIcons handles GET /api/v1/icons/search?query=&k=.
func (s *Server) SearchIcons(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := params.Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	k := 1
	if raw := params.Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxK {
			writeError(w, http.StatusBadRequest, "validation_failed",
				"k must be an integer between 1 and "+strconv.Itoa(MaxK))
			return
		}
		k = n
	}

	writeJSON(w, http.StatusOK, SearchResponse{Icons: s.searcher.SearchIcons(r.Context(), query, k)})
}

// HealthCheck handles GET /healthz. Degraded tiers still answer queries,
// so they are reported but never fail the check.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	tier := s.searcher.Tier()
	status := "ok"
	if tier != core.TierVector {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: status, Tier: tier.String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered", "panic", rvr, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger emits one log line per request and propagates X-Request-ID.
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"latency", time.Since(start),
				"response_bytes", ww.BytesWritten(),
			)
		})
	}
}
