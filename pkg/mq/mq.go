// Package mq RabbitMQ消息发布与消费
//
// 领域事件以Envelope的JSON形式发布到topic交换机，routing key即事件类型（如 order.created）。
// 发布是尽力而为的：业务事务已经提交，发布失败只记录日志和指标，不回滚业务。
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/pkg/metrics"
)

// Envelope 消息信封
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope 序列化payload并生成消息ID
func NewEnvelope(eventType string, payload interface{}) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("消息序列化失败: %w", err)
	}
	return &Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	}, nil
}

// Decode 反序列化payload
func (e *Envelope) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// Publisher 消息发布者
// amqp.Channel不是并发安全的，发布时加锁
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger
	mu       sync.Mutex
}

// NewPublisher 连接RabbitMQ并声明持久化交换机
func NewPublisher(url, exchange, exchangeType string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	log.Info("消息发布者已创建", zap.String("exchange", exchange), zap.String("type", exchangeType))
	return &Publisher{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

// Publish 发布事件，消息持久化
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	env, err := NewEnvelope(routingKey, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    env.ID,
		Type:         routingKey,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    env.OccurredAt,
	})
	p.mu.Unlock()

	if err != nil {
		metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "failure").Inc()
		return fmt.Errorf("发布消息失败: %w", err)
	}
	metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "success").Inc()
	p.log.Debug("消息已发布", zap.String("routing_key", routingKey), zap.String("message_id", env.ID))
	return nil
}

func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// Handler 消息处理函数，返回error时消息重新入队一次
type Handler func(ctx context.Context, env *Envelope) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *zap.Logger
}

// NewConsumer 声明交换机和持久化队列，并按routingKeys绑定（支持 order.* 通配符）
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, log *zap.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	fail := func(format string, err error) (*Consumer, error) {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf(format, err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		return fail("声明Exchange失败: %w", err)
	}
	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fail("声明Queue失败: %w", err)
	}
	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			return fail("绑定Queue失败: %w", err)
		}
	}

	log.Info("消息消费者已创建", zap.String("queue", q.Name), zap.Strings("routing_keys", routingKeys))
	return &Consumer{conn: conn, channel: channel, queue: q.Name, log: log}, nil
}

// Consume 阻塞消费直到ctx取消，手动确认，每次只预取一条
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	c.log.Info("开始消费消息", zap.String("queue", c.queue))
	for {
		select {
		case <-ctx.Done():
			c.log.Info("消费者退出", zap.String("queue", c.queue))
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("消息Channel已关闭")
			}
			c.handle(ctx, msg, handler)
		}
	}
}

// handle 解析失败的消息直接丢弃；处理失败的消息重新入队一次，再次失败则丢弃
func (c *Consumer) handle(ctx context.Context, msg amqp.Delivery, handler Handler) {
	start := time.Now()
	defer func() { metrics.MessageProcessingDuration.Observe(time.Since(start).Seconds()) }()

	log := c.log.With(zap.String("routing_key", msg.RoutingKey), zap.String("message_id", msg.MessageId))

	var env Envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		log.Error("消息格式错误，丢弃", zap.Error(err))
		metrics.MessagesConsumedTotal.WithLabelValues(c.queue, "malformed").Inc()
		_ = msg.Nack(false, false)
		return
	}

	if err := handler(ctx, &env); err != nil {
		requeue := !msg.Redelivered
		log.Warn("消息处理失败", zap.Error(err), zap.Bool("requeue", requeue))
		metrics.MessagesConsumedTotal.WithLabelValues(c.queue, "failure").Inc()
		_ = msg.Nack(false, requeue)
		return
	}

	metrics.MessagesConsumedTotal.WithLabelValues(c.queue, "success").Inc()
	_ = msg.Ack(false)
}

func (c *Consumer) Close() error {
	var errs []error
	if c.channel != nil {
		errs = append(errs, c.channel.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}
