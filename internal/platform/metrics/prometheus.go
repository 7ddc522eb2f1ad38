package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
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
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	intakesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intakes_completed_total",
			Help: "Total number of completed patient intakes",
		},
	)

	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of medical reports generated",
		},
		[]string{"source"},
	)

	appointmentsBooked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_booked_total",
			Help: "Total number of appointments booked",
		},
		[]string{"specialist"},
	)

	emailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of patient emails sent",
		},
		[]string{"kind", "status"},
	)

	ttsFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tts_failures_total",
			Help: "Total number of failed speech synthesis calls",
		},
	)

	llmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Language model request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"purpose"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath caps path cardinality; the API surface is small and static
// so anything unusually long is collapsed.
func normalizePath(path string) string {
	if len(path) > 100 {
		return "/api/..."
	}
	return path
}

// --- Business metric helpers ---

// RecordIntakeCompleted records a finished intake conversation
func RecordIntakeCompleted() {
	intakesCompleted.Inc()
}

// RecordReportGenerated records a medical report, source is "llm" or "fallback"
func RecordReportGenerated(source string) {
	reportsGenerated.WithLabelValues(source).Inc()
}

// RecordAppointmentBooked records a confirmed booking
func RecordAppointmentBooked(specialist string) {
	appointmentsBooked.WithLabelValues(specialist).Inc()
}

// RecordEmailSent records a patient email attempt
func RecordEmailSent(kind string, ok bool) {
	status := "failed"
	if ok {
		status = "sent"
	}
	emailsSent.WithLabelValues(kind, status).Inc()
}

// RecordTTSFailure records a failed speech synthesis call
func RecordTTSFailure() {
	ttsFailures.Inc()
}

// RecordLLMRequest records a language model call duration
func RecordLLMRequest(purpose string, duration time.Duration) {
	llmRequestDuration.WithLabelValues(purpose).Observe(duration.Seconds())
}
