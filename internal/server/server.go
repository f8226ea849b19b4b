// Package server exposes recommendations over HTTP: one-shot JSON lookups
// and a websocket stream that recomputes on an interval.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
	"github.com/dgnsrekt/gex-condor/internal/gex"
)

type Server struct {
	store          *gex.Store
	selector       *analysis.Selector
	defaults       analysis.Config
	streamInterval time.Duration
	logger         *zap.Logger

	// now is swappable for tests; the core itself never reads the clock.
	now func() time.Time
}

func NewServer(store *gex.Store, selector *analysis.Selector, defaults analysis.Config, streamInterval time.Duration, logger *zap.Logger) *Server {
	return &Server{
		store:          store,
		selector:       selector,
		defaults:       defaults,
		streamInterval: streamInterval,
		logger:         logger,
		now:            time.Now,
	}
}

func NewRouter(s *Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)
	r.Use(zapLoggerMiddleware(logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/symbols", s.handleSymbols)
	r.Get("/recommend/{ticker}", s.handleRecommend)
	r.Get("/recommend/{ticker}/ws", s.handleStream)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func zapLoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
			)
			next.ServeHTTP(w, r)
		})
	}
}
