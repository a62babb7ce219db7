package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 外部依赖指标
	graphCallsTotal        *prometheus.CounterVec
	enrichmentDegradations prometheus.Counter
	sideEffectsDropped     *prometheus.CounterVec
}

var (
	globalCollector *MetricsCollector
	collectorOnce   sync.Once
)

// GetGlobalCollector 获取全局指标收集器
func GetGlobalCollector() *MetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = newMetricsCollector()
	})
	return globalCollector
}

func newMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		graphCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "social_graph_calls_total",
				Help: "Calls to the social graph service by method and outcome",
			},
			[]string{"method", "outcome"},
		),

		enrichmentDegradations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "post_enrichment_degradations_total",
				Help: "Interaction-count lookups that degraded to zero values",
			},
		),

		sideEffectsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "side_effects_dropped_total",
				Help: "Best-effort side effect tasks dropped because the queue was full",
			},
			[]string{"kind"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordGraphCall 记录社交关系服务调用结果
func (m *MetricsCollector) RecordGraphCall(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.graphCallsTotal.WithLabelValues(method, outcome).Inc()
}

// RecordEnrichmentDegradation 记录一次互动计数降级
func (m *MetricsCollector) RecordEnrichmentDegradation() {
	m.enrichmentDegradations.Inc()
}

// RecordSideEffectDropped 记录被丢弃的 best-effort 任务
func (m *MetricsCollector) RecordSideEffectDropped(kind string) {
	m.sideEffectsDropped.WithLabelValues(kind).Inc()
}
