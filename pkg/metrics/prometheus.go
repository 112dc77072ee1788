// Package metrics provides Prometheus metrics for the draft grading service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default latency buckets in milliseconds.
var defaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  *prometheus.Registry

	// Submission flow
	submissionsAccepted  prometheus.Counter
	submissionsDuplicate prometheus.Counter

	// Queue health
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueErrors      prometheus.Counter

	// Grading pipeline
	gradingRuns    prometheus.Counter
	gradingNoops   prometheus.Counter
	gradingErrors  prometheus.Counter
	gradingLatency prometheus.Histogram

	// Service state
	workerCount prometheus.Gauge
	totalGrades prometheus.Gauge

	// Notifications
	publishErrors prometheus.Counter

	// System
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets custom buckets for latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// NewManager creates a Manager with its own registry and registers all
// metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "draftgrade",
		buckets:   defaultBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.submissionsAccepted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_accepted_total",
		Help: "Draft submissions accepted for grading.",
	})
	m.submissionsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_duplicate_total",
		Help: "Draft submissions rejected as duplicates.",
	})
	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current number of queued grading jobs.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured grading queue capacity.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Queue fill ratio between 0 and 1.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Grading jobs enqueued.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total",
		Help: "Grading jobs dequeued by workers.",
	})
	m.queueErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_errors_total",
		Help: "Enqueue failures (closed queue or backpressure).",
	})
	m.gradingRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "grading_runs_total",
		Help: "Grading runs that persisted a grade batch.",
	})
	m.gradingNoops = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "grading_noops_total",
		Help: "Grading runs skipped because the league was already graded.",
	})
	m.gradingErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "grading_errors_total",
		Help: "Grading runs that failed.",
	})
	m.gradingLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "grading_latency_ms",
		Help:    "End-to-end grading run latency in milliseconds.",
		Buckets: m.buckets,
	})
	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of grading workers.",
	})
	m.totalGrades = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "grades_total",
		Help: "Persisted grades across all leagues.",
	})
	m.publishErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "publish_errors_total",
		Help: "Failed grade-completion notifications.",
	})
	m.systemMemory = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Allocated heap bytes.",
	})
	m.systemGoroutines = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Current goroutine count.",
	})
	m.systemGCPause = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_ms",
		Help:    "Average GC pause time in milliseconds.",
		Buckets: m.buckets,
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.buckets,
	}, []string{"endpoint", "method", "status"})

	return m
}

// Registry exposes the manager's registry for serving.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

func manager() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// GetRegistry returns the default manager's registry.
func GetRegistry() *prometheus.Registry { return manager().Registry() }

// Package-level recording helpers over the default manager.

func RecordSubmissionAccepted()  { manager().submissionsAccepted.Inc() }
func RecordSubmissionDuplicate() { manager().submissionsDuplicate.Inc() }

func RecordQueueEnqueue()      { manager().queueEnqueues.Inc() }
func RecordQueueDequeue()      { manager().queueDequeues.Inc() }
func RecordQueueEnqueueError() { manager().queueErrors.Inc() }

func UpdateQueueSize(n int)           { manager().queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)       { manager().queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { manager().queueUtilization.Set(r) }

func RecordGradingRun()               { manager().gradingRuns.Inc() }
func RecordGradingNoop()              { manager().gradingNoops.Inc() }
func RecordGradingError()             { manager().gradingErrors.Inc() }
func RecordGradingLatency(ms float64) { manager().gradingLatency.Observe(ms) }

func UpdateWorkerCount(n int) { manager().workerCount.Set(float64(n)) }
func UpdateTotalGrades(n int) { manager().totalGrades.Set(float64(n)) }

func RecordPublishError() { manager().publishErrors.Inc() }

func UpdateSystemMemoryUsage(bytes uint64)  { manager().systemMemory.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)      { manager().systemGoroutines.Set(float64(n)) }
func RecordSystemGCPauseTime(ms float64)    { manager().systemGCPause.Observe(ms) }

func RecordHTTPRequest(endpoint, method, status string) {
	manager().httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	manager().httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
