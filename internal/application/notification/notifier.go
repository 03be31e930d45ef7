// Package notification 消费领域事件，目前只记录结构化日志
// 邮件、短信等通知渠道接在这里
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/pkg/mq"
)

type Notifier struct {
	log *zap.Logger
}

func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{log: log}
}

// Handle 实现mq.Handler
// payload解析失败返回error，消息会重新入队一次；未知事件类型只记日志
func (n *Notifier) Handle(_ context.Context, env *mq.Envelope) error {
	log := n.log.With(zap.String("event_id", env.ID), zap.String("type", env.Type), zap.Time("occurred_at", env.OccurredAt))

	switch env.Type {
	case event.OrderCreated:
		var p event.OrderCreatedPayload
		if err := env.Decode(&p); err != nil {
			return fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		log.Info("新订单",
			zap.String("order_no", p.OrderNo),
			zap.Uint("user_id", p.UserID),
			zap.String("total", p.Total),
			zap.Int("item_count", p.ItemCount),
			zap.String("source", p.Source),
		)

	case event.OrderStatusChanged:
		var p event.OrderStatusChangedPayload
		if err := env.Decode(&p); err != nil {
			return fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		log.Info("订单状态变更",
			zap.String("order_no", p.OrderNo),
			zap.Uint("user_id", p.UserID),
			zap.String("from", p.From),
			zap.String("to", p.To),
		)

	case event.ReviewSubmitted:
		var p event.ReviewSubmittedPayload
		if err := env.Decode(&p); err != nil {
			return fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		log.Info("评价待审核",
			zap.Uint("review_id", p.ReviewID),
			zap.Uint("book_id", p.BookID),
			zap.Int("rating", p.Rating),
		)

	case event.UserRegistered:
		var p event.UserRegisteredPayload
		if err := env.Decode(&p); err != nil {
			return fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		log.Info("新用户注册", zap.Uint("user_id", p.UserID), zap.String("email", p.Email))

	default:
		log.Warn("忽略未知事件")
	}
	return nil
}
