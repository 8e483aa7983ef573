// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
//   - HTTP指标：由middleware.Metrics在每个请求结束时记录
//   - 业务指标：由application层的用例记录（图书操作结果、缓存命中情况）
//
// 命名规范：
//   - Counter以`_total`结尾
//   - Histogram以单位结尾（`_seconds`）
//   - Gauge使用现在时态（`_in_progress`）
//
// 注意：path标签使用路由模板（/books/:isbn），不要使用原始URL，避免高基数
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// once 防止重复注册（重复注册会panic）
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/books/:isbn）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BookOperationsTotal 图书操作总数（Counter）
	// 标签：operation（create/list/get/update/delete）、result（success/invalid/not_found/conflict/error）
	BookOperationsTotal *prometheus.CounterVec

	// BookCacheRequestsTotal 图书缓存访问总数（Counter）
	// 标签：result（hit/miss/error）
	BookCacheRequestsTotal *prometheus.CounterVec

	// BookCacheBreakerState 缓存熔断器状态（Gauge）：0=closed 1=open 2=half_open
	BookCacheBreakerState prometheus.Gauge
)

// 图书操作名（operation标签取值）
const (
	OpCreate = "create"
	OpList   = "list"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
)

// 操作结果（result标签取值）
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultError    = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// InitMetrics 初始化所有Prometheus指标
//
// 可以多次调用，只有第一次生效。
// 使用promauto.New*自动注册到默认Registry
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_operations_total",
				Help: "图书操作总数",
			},
			[]string{"operation", "result"},
		)

		BookCacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_requests_total",
				Help: "图书缓存访问总数",
			},
			[]string{"result"},
		)

		BookCacheBreakerState = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "book_cache_breaker_state",
				Help: "图书缓存熔断器状态（0=closed 1=open 2=half_open）",
			},
		)
	})
}

// Handler 返回/metrics端点的HTTP处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// RecordBookOperation 记录一次图书操作结果
func RecordBookOperation(operation, result string) {
	InitMetrics()
	BookOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheRequest 记录一次缓存访问结果
func RecordCacheRequest(result string) {
	InitMetrics()
	BookCacheRequestsTotal.WithLabelValues(result).Inc()
}

// SetCacheBreakerState 记录缓存熔断器状态
func SetCacheBreakerState(state int) {
	InitMetrics()
	BookCacheBreakerState.Set(float64(state))
}
