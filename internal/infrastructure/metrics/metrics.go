// Package metrics exposes scheduler counters through Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reminderd"

// Recorder collects scheduler metrics on its own registry.
type Recorder struct {
	registry     *prometheus.Registry
	ticks        *prometheus.CounterVec
	tickDuration *prometheus.HistogramVec
	processed    *prometheus.CounterVec
	purged       prometheus.Counter
	dispatch     *prometheus.CounterVec
}

// New creates a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of scheduler job runs.",
		}, []string{"job"}),
		tickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of scheduler job runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_processed_total",
			Help:      "Due reminders handled by the due tick, by outcome.",
		}, []string{"outcome"}),
		purged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_purged_total",
			Help:      "Completed reminders deleted by the retention cleanup.",
		}),
		dispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Push gateway dispatch results, by status.",
		}, []string{"status"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ticks, r.tickDuration, r.processed, r.purged, r.dispatch,
	)
	return r
}

// ObserveTick records one run of job that took d.
func (r *Recorder) ObserveTick(job string, d time.Duration) {
	r.ticks.WithLabelValues(job).Inc()
	r.tickDuration.WithLabelValues(job).Observe(d.Seconds())
}

// AddProcessed adds n reminders with the given outcome.
func (r *Recorder) AddProcessed(outcome string, n int) {
	if n > 0 {
		r.processed.WithLabelValues(outcome).Add(float64(n))
	}
}

// AddPurged adds n purged reminders.
func (r *Recorder) AddPurged(n int64) {
	if n > 0 {
		r.purged.Add(float64(n))
	}
}

// IncDispatch counts one dispatch call with the given status.
func (r *Recorder) IncDispatch(status string) {
	r.dispatch.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
