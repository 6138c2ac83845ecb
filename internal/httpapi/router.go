// Package httpapi wires the detection.Router into the three HTTP endpoints
// of spec §6, using the same chi + go-chi/cors + zap stack the teacher's
// services/construction/cmd/main.go and arx-backend/gateway middleware use.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arxos/roomvision/internal/config"
	"github.com/arxos/roomvision/pkg/detection"
	"github.com/arxos/roomvision/pkg/walldetect"
)

// NewRouter builds the full HTTP handler tree: CORS, request IDs, rate
// limiting and metrics middleware wrapping the three detection endpoints,
// plus a health check and a Prometheus scrape endpoint.
func NewRouter(cfg *config.Config, router *detection.Router, wall *walldetect.ModelHandle, logger *zap.Logger) http.Handler {
	h := &handlers{router: router, wall: wall, logger: logger}
	rl := newRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	m := newMetrics()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(m.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(rl.middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/detect-rooms", h.detectRooms)
		r.Post("/detect-walls", h.detectWalls)
		r.Post("/convert-to-rooms", h.convertToRooms)
	})

	return r
}
