package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type requestIDKey struct{}

// requestID attaches a fresh UUID to each inbound request's context and
// response headers, the same correlation idiom used throughout the
// arx-os-arxos handlers (google/uuid for entity and request IDs).
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// rateLimiter is a process-wide token-bucket limiter, a single-tenant
// simplification of the teacher's per-user/per-service
// RateLimitMiddleware (arx-backend/gateway/middleware/rate_limit.go): this
// service has no auth layer to key limiters by, so one global limiter is
// the entire keyspace.
type rateLimiter struct {
	limiter *rate.Limiter
	logger  *zap.Logger
	mu      sync.Mutex
}

func newRateLimiter(requestsPerSecond, burst int, logger *zap.Logger) *rateLimiter {
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  logger,
	}
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.mu.Lock()
		allowed := rl.limiter.Allow()
		rl.mu.Unlock()

		if !allowed {
			rl.logger.Warn("rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("request_id", requestIDFromContext(r.Context())),
			)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(rl.limiter.Limit())))
			w.Header().Set("X-RateLimit-Remaining", "0")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// metrics mirrors the teacher's promauto CounterVec/HistogramVec pattern
// (arx-backend/gateway/middleware/monitoring.go) scoped to this service's
// three detection endpoints.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var (
	sharedMetrics     *metrics
	sharedMetricsOnce sync.Once
)

// newMetrics registers the collectors with the default Prometheus registry
// on first use and returns the same instance on every later call, so
// NewRouter can be called more than once per process.
func newMetrics() *metrics {
	sharedMetricsOnce.Do(func() {
		sharedMetrics = buildMetrics()
	})
	return sharedMetrics
}

func buildMetrics() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomvision_requests_total",
				Help: "Total number of detection requests",
			},
			[]string{"path", "status_code"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roomvision_request_duration_seconds",
				Help:    "Detection request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.requestDuration.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.statusCode)).Inc()
	})
}
