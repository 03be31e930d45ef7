// Package metrics Prometheus指标
//
// 指标注册到包内独立的Registry，由/metrics端点暴露。
// 标签取值必须是有限集合：path使用路由模板（/api/books/:id），不要用实际URL。
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leafside"

var (
	once sync.Once

	// Registry 应用指标注册表，包含Go运行时和进程指标
	Registry = prometheus.NewRegistry()

	// HTTP
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge
	RateLimitedTotal       prometheus.Counter

	// 账户
	UsersRegisteredTotal prometheus.Counter
	LoginsTotal          *prometheus.CounterVec

	// 订单
	OrdersCreatedTotal      *prometheus.CounterVec
	OrdersFailedTotal       *prometheus.CounterVec
	OrderCreationDuration   prometheus.Histogram
	OrderStatusChangesTotal *prometheus.CounterVec

	// 缓存
	BookCacheRequests *prometheus.CounterVec

	// 熔断器
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列
	MessagesPublishedTotal    *prometheus.CounterVec
	MessagesConsumedTotal     *prometheus.CounterVec
	MessageProcessingDuration prometheus.Histogram
)

func init() {
	InitMetrics()
}

// InitMetrics 初始化所有指标，可重复调用
func InitMetrics() {
	once.Do(register)
}

func register() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(Registry)

	HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP请求总数",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP请求耗时（秒）",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "path"})

	HTTPRequestsInProgress = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_progress",
		Help:      "正在处理的HTTP请求数",
	})

	RateLimitedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "被限流拒绝的请求数",
	})

	UsersRegisteredTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "注册用户数",
	})

	LoginsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "登录次数",
	}, []string{"result"}) // success | failure

	OrdersCreatedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "订单创建总数",
	}, []string{"source"}) // cart | direct

	OrdersFailedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_failed_total",
		Help:      "订单创建失败总数",
	}, []string{"reason"})

	OrderCreationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_creation_duration_seconds",
		Help:      "订单创建耗时（秒）",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	OrderStatusChangesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "订单状态变更次数",
	}, []string{"from", "to"})

	BookCacheRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_cache_requests_total",
		Help:      "图书缓存读取次数",
	}, []string{"result"}) // hit | miss | error

	CircuitBreakerState = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
	}, []string{"name"})

	CircuitBreakerRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_requests_total",
		Help:      "熔断器请求总数",
	}, []string{"name", "result"}) // success | failure | rejected

	MessagesPublishedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_published_total",
		Help:      "消息发布总数",
	}, []string{"routing_key", "result"})

	MessagesConsumedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_consumed_total",
		Help:      "消息消费总数",
	}, []string{"queue", "result"})

	MessageProcessingDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "message_processing_duration_seconds",
		Help:      "消息处理耗时（秒）",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	InitMetrics()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
