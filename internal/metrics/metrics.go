package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the triage metrics. Gateways record one observation
// per processed email.
type Recorder struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	replies         *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewRecorder registers the triage collectors on a private registry so
// tests can create recorders without collisions.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_classifications_total",
			Help: "Number of classified emails by category and length bucket.",
		}, []string{"category", "bucket"}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_replies_total",
			Help: "Number of suggested replies by source.",
		}, []string{"source"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "triage_request_duration_seconds",
			Help:    "End to end processing time per email.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(r.classifications, r.replies, r.duration)
	return r
}

// ObserveTriage records one processed email.
func (r *Recorder) ObserveTriage(category, bucket, replySource string, elapsed time.Duration) {
	r.classifications.WithLabelValues(category, bucket).Inc()
	r.replies.WithLabelValues(replySource).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// Handler exposes the registry for the /metrics endpoint.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
