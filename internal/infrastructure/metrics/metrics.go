package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
)

var (
	engineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel_search",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine round trip duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode", "outcome"},
	)

	engineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_search",
			Name:      "engine_requests_total",
			Help:      "Total number of search engine requests",
		},
		[]string{"mode", "outcome"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel_search",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_search",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(engineRequestDuration, engineRequestsTotal)
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
}

// InstrumentedEngine records duration and outcome of every engine call.
type InstrumentedEngine struct {
	inner search.Engine
}

func NewInstrumentedEngine(inner search.Engine) *InstrumentedEngine {
	return &InstrumentedEngine{inner: inner}
}

func (e *InstrumentedEngine) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	start := time.Now()
	response, err := e.inner.Search(ctx, req)

	mode := "search"
	if req.Size == 0 && len(req.Aggregations) > 0 {
		mode = "facets"
	}
	outcome := Outcome(err)

	engineRequestDuration.WithLabelValues(mode, outcome).Observe(time.Since(start).Seconds())
	engineRequestsTotal.WithLabelValues(mode, outcome).Inc()

	return response, err
}

func (e *InstrumentedEngine) HealthCheck(ctx context.Context) error {
	return e.inner.HealthCheck(ctx)
}

// Outcome is the metric label for an engine error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, search.ErrEngineUnavailable):
		return "unavailable"
	case errors.Is(err, search.ErrEngineQueryRejected):
		return "rejected"
	default:
		return "error"
	}
}

// Middleware records HTTP request duration and count, labelled by route template.
func Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			path := "unknown"
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}
			status := strconv.Itoa(ww.status)

			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
