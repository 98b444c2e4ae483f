package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"benchfuse/internal/cache"
	"benchfuse/internal/logging"
)

// ops.go
//
// Operational sidecar router: health and cache observability. Kept off the
// main API port so infra probes never mix with validation traffic.

// CacheStatsSource is anything that can report cache counters.
type CacheStatsSource interface {
	CacheStats() cache.Stats
}

// OpsServer serves the operational endpoints.
type OpsServer struct {
	router *chi.Mux
	stats  CacheStatsSource
	log    *logging.Logger
}

// NewOpsServer creates the ops router over the given stats source.
func NewOpsServer(stats CacheStatsSource) *OpsServer {
	s := &OpsServer{
		router: chi.NewRouter(),
		stats:  stats,
		log:    logging.NewDefaultLogger("OpsServer"),
	}
	s.router.Use(middleware.Recoverer)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/cache/stats", s.handleCacheStats)
	return s
}

// Handler exposes the router for mounting or serving.
func (s *OpsServer) Handler() http.Handler {
	return s.router
}

// Start blocks serving the ops endpoints on the given port.
func (s *OpsServer) Start(port string) error {
	addr := ":" + port
	s.log.Info("ops server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *OpsServer) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stats.CacheStats())
}
