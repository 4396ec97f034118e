// Package metrics provides Prometheus metrics for the marquee
// box-office service: corpus ingestion, pipeline stages, predictions
// and the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Corpus ingestion
	corpusRowsParsed      prometheus.Counter
	corpusRowsSkipped     *prometheus.CounterVec
	corpusMalformedFields *prometheus.CounterVec

	// Pipeline
	pipelineStageDuration *prometheus.HistogramVec
	pipelineLastRunUnix   prometheus.Gauge
	schemaFeatureCount    prometheus.Gauge
	talentCount           *prometheus.GaugeVec

	// Serving
	predictionsTotal     prometheus.Counter
	predictionLatency    prometheus.Histogram
	unknownCategoryTotal *prometheus.CounterVec

	// Metadata provider client
	tmdbRequestsTotal *prometheus.CounterVec

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry so default Go collectors do not
// pollute the scrape.
var (
	customRegistry = prometheus.NewRegistry()                 //nolint:gochecknoglobals // singleton metrics registry
	globalManager  = NewManager(WithRegistry(customRegistry)) //nolint:gochecknoglobals // singleton metrics manager
)

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "marquee",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.corpusRowsParsed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "corpus_rows_parsed_total",
		Help:      "Raw corpus rows successfully admitted after cleaning.",
	})
	m.corpusRowsSkipped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "corpus_rows_skipped_total",
		Help:      "Raw corpus rows excluded during cleaning, by reason.",
	}, []string{"reason"})
	m.corpusMalformedFields = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "corpus_malformed_fields_total",
		Help:      "Fields that fell back to their documented default, by field.",
	}, []string{"field"})

	m.pipelineStageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pipeline_stage_duration_seconds",
		Help:      "Wall time per pipeline stage.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"stage"})
	m.pipelineLastRunUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "pipeline_last_run_timestamp_seconds",
		Help:      "Unix time of the last completed pipeline run.",
	})
	m.schemaFeatureCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "schema_feature_count",
		Help:      "Width of the canonical feature schema.",
	})
	m.talentCount = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "talent_count",
		Help:      "Distinct talents tracked in the final ledgers, by kind.",
	}, []string{"kind"})

	m.predictionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "predictions_total",
		Help:      "Prediction requests served.",
	})
	m.predictionLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "prediction_duration_seconds",
		Help:      "End-to-end prediction latency, vector build included.",
		Buckets:   prometheus.DefBuckets,
	})
	m.unknownCategoryTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "unknown_category_total",
		Help:      "Live inputs naming a category absent from the schema, by family.",
	}, []string{"family"})

	m.tmdbRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "tmdb_requests_total",
		Help:      "Metadata provider requests, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by endpoint, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status"})

	return m
}

// GetRegistry exposes the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers on the global manager.

func RecordCorpusRowParsed() { globalManager.corpusRowsParsed.Inc() }

func RecordCorpusRowSkipped(reason string) {
	globalManager.corpusRowsSkipped.WithLabelValues(reason).Inc()
}

func RecordCorpusMalformedField(field string) {
	globalManager.corpusMalformedFields.WithLabelValues(field).Inc()
}

func RecordPipelineStageDuration(stage string, seconds float64) {
	globalManager.pipelineStageDuration.WithLabelValues(stage).Observe(seconds)
}
func SetPipelineLastRun(unix float64) { globalManager.pipelineLastRunUnix.Set(unix) }

func SetSchemaFeatureCount(n int) { globalManager.schemaFeatureCount.Set(float64(n)) }

func SetTalentCount(kind string, n int) {
	globalManager.talentCount.WithLabelValues(kind).Set(float64(n))
}

func RecordPrediction(seconds float64) {
	globalManager.predictionsTotal.Inc()
	globalManager.predictionLatency.Observe(seconds)
}

func RecordUnknownCategory(family string) {
	globalManager.unknownCategoryTotal.WithLabelValues(family).Inc()
}

func RecordTMDBRequest(endpoint, outcome string) {
	globalManager.tmdbRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(seconds)
}
