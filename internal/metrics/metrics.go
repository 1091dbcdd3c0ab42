// Package metrics records job and response counters for httpie.
//
// Each [Metrics] value owns a private Prometheus registry so several servers
// (and tests) can coexist in one process. [Metrics.Expose] renders the
// registry in the Prometheus text exposition format.
package metrics

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Response sources.
const (
	SourceRoute   = "route"
	SourceStatic  = "static"
	SourceBuiltin = "builtin"
)

// Metrics holds the collectors for one server. All methods are safe for
// concurrent use.
type Metrics struct {
	registry    *prometheus.Registry
	jobs        prometheus.Counter
	shed        prometheus.Counter
	panics      prometheus.Counter
	responses   *prometheus.CounterVec
	inFlight    prometheus.Gauge
	jobDuration prometheus.Histogram
}

// New creates and registers the httpie collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpie_jobs_total",
			Help: "Connections handed to the worker pool.",
		}),
		shed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpie_jobs_shed_total",
			Help: "Connections rejected because the job queue was full.",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "httpie_handler_panics_total",
			Help: "Route handlers that panicked.",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "httpie_responses_total",
			Help: "Responses written, by status code and source.",
		}, []string{"status", "source"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "httpie_jobs_in_flight",
			Help: "Jobs currently running on a worker.",
		}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "httpie_job_duration_seconds",
			Help:    "Time from job start to connection close.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(m.jobs, m.shed, m.panics, m.responses, m.inFlight, m.jobDuration)
	return m
}

// JobQueued counts a connection accepted into the job queue.
func (m *Metrics) JobQueued() { m.jobs.Inc() }

// JobShed counts a connection turned away because the queue was full.
func (m *Metrics) JobShed() { m.shed.Inc() }

// HandlerPanic counts a recovered handler panic.
func (m *Metrics) HandlerPanic() { m.panics.Inc() }

// JobStarted marks a job as running and returns a function that must be
// called when it finishes.
func (m *Metrics) JobStarted() (done func()) {
	start := time.Now()
	m.inFlight.Inc()
	return func() {
		m.inFlight.Dec()
		m.jobDuration.Observe(time.Since(start).Seconds())
	}
}

// Response counts one written response.
func (m *Metrics) Response(status int, source string) {
	m.responses.WithLabelValues(strconv.Itoa(status), source).Inc()
}

// Registry exposes the underlying registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Expose gathers all collectors and encodes them in the text format.
func (m *Metrics) Expose() ([]byte, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}
