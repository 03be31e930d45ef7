// Package messaging 领域事件发布的基础设施实现
package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/pkg/circuitbreaker"
	"github.com/xiebiao/leafside/pkg/metrics"
)

// Publisher mq.Publisher满足此接口
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// GuardedPublisher 带熔断的事件发布器
// RabbitMQ不可用时熔断打开，后续事件直接丢弃，不拖慢下单等请求
type GuardedPublisher struct {
	next    Publisher
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	log     *zap.Logger
}

var _ application.EventPublisher = (*GuardedPublisher)(nil)

// NewGuardedPublisher 连续失败5次后熔断30秒
func NewGuardedPublisher(next Publisher, timeout time.Duration, log *zap.Logger) *GuardedPublisher {
	const name = "event_publisher"

	breaker := circuitbreaker.New(name, circuitbreaker.Settings{
		Timeout: 30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(circuitbreaker.StateClosed))

	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &GuardedPublisher{next: next, breaker: breaker, timeout: timeout, log: log}
}

func (p *GuardedPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	// 请求结束后ctx会被取消，发布使用独立的超时
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.breaker.Execute(func() error {
		return p.next.Publish(pubCtx, routingKey, payload)
	})

	name := p.breaker.Name()
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
		p.log.Debug("熔断中，丢弃事件", zap.String("routing_key", routingKey))
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
	}
	return err
}

// State 健康检查使用
func (p *GuardedPublisher) State() circuitbreaker.State {
	return p.breaker.State()
}
