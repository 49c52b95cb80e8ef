package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csr_leads_created_total",
			Help: "Total number of leads created",
		},
		[]string{"status"},
	)

	followUpsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csr_follow_ups_completed_total",
			Help: "Total number of follow-ups marked complete",
		},
	)

	persistenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csr_persistence_errors_total",
			Help: "Total number of lead store failures",
		},
		[]string{"operation"},
	)

	remindersPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csr_reminders_published_total",
			Help: "Total number of follow-up reminders queued",
		},
	)

	remindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csr_reminders_sent_total",
			Help: "Total number of follow-up reminder deliveries by outcome",
		},
		[]string{"outcome"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps lead ids out of label values.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func RecordLeadCreated(status string) {
	leadsCreated.WithLabelValues(status).Inc()
}

func RecordFollowUpCompleted() {
	followUpsCompleted.Inc()
}

func RecordPersistenceError(operation string) {
	persistenceErrors.WithLabelValues(operation).Inc()
}

func RecordReminderPublished() {
	remindersPublished.Inc()
}

func RecordReminderSent(outcome string) {
	remindersSent.WithLabelValues(outcome).Inc()
}
