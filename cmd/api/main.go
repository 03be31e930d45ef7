// @title           LeafSide 网上书店 API
// @version         1.0
// @description     图书目录、购物车、订单、评价与收藏
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     格式: Bearer <access_token>
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	_ "github.com/xiebiao/leafside/docs"
	"github.com/xiebiao/leafside/internal/infrastructure/config"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/tracing"
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
	})

	if err := run(cfg, zlog); err != nil {
		zlog.Error("服务异常退出", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) (err error) {
	shutdownTracer := tracing.ShutdownFunc(func(context.Context) error { return nil })
	if cfg.Tracing.Enabled {
		shutdownTracer, err = tracing.InitTracer(tracing.Options{
			ServiceName:  cfg.Tracing.ServiceName,
			CollectorURL: cfg.Tracing.CollectorURL,
			SampleRatio:  cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return err
		}
		zlog.Info("链路追踪已启用", zap.String("collector", cfg.Tracing.CollectorURL))
	}

	if err := dto.RegisterValidators(); err != nil {
		return fmt.Errorf("注册参数校验器失败: %w", err)
	}

	app, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Bootstrap.Execute(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}

	if app.Limiter != nil {
		if err := app.Limiter.Start(cfg.RateLimit.CleanupSchedule); err != nil {
			return fmt.Errorf("启动限流清理任务失败: %w", err)
		}
		defer app.Limiter.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP服务异常: %w", err)
	case <-ctx.Done():
	}

	zlog.Info("收到退出信号，开始优雅关闭")
	return shutdown(srv, shutdownTracer, zlog, cfg.Server.ShutdownTimeout)
}

// shutdown 依次关闭HTTP服务和tracer，汇总所有错误
func shutdown(srv *http.Server, shutdownTracer tracing.ShutdownFunc, zlog *zap.Logger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var result *multierror.Error
	if err := srv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("关闭HTTP服务: %w", err))
	}
	if err := shutdownTracer(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("关闭tracer: %w", err))
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	zlog.Info("服务已停止")
	_ = zlog.Sync()
	return nil
}
