// notifier 订阅RabbitMQ中的领域事件并记录
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/internal/application/notification"
	"github.com/xiebiao/leafside/internal/infrastructure/config"
	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog := logger.MustInit(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	}).Named("notifier")
	defer func() { _ = zlog.Sync() }()

	if !cfg.MQ.Enabled {
		zlog.Fatal("未启用消息队列(mq.enabled=false)，notifier无事可做")
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, event.RoutingKeys, zlog)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			zlog.Warn("关闭消费者失败", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notification.NewNotifier(zlog)
	if err := consumer.Consume(ctx, notifier.Handle); err != nil {
		zlog.Error("消费异常退出", zap.Error(err))
	}
}
