package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/leafside/internal/application"
	appuser "github.com/xiebiao/leafside/internal/application/user"
	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/internal/infrastructure/config"
	"github.com/xiebiao/leafside/internal/infrastructure/messaging"
	"github.com/xiebiao/leafside/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/leafside/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/jwt"
	"github.com/xiebiao/leafside/pkg/mq"
)

// App InitializeApp的产出
type App struct {
	Engine    *gin.Engine
	Limiter   *middleware.RateLimiter
	Bootstrap *appuser.BootstrapAdminUseCase
}

func newApp(engine *gin.Engine, limiter *middleware.RateLimiter, bootstrap *appuser.BootstrapAdminUseCase) *App {
	return &App{Engine: engine, Limiter: limiter, Bootstrap: bootstrap}
}

// provideDB 退出时关闭连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(cfg *config.Config, client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client, cfg.Cache.KeyPrefix)
}

// provideBookCache 关闭缓存时返回nil接口，领域服务直接查库
func provideBookCache(cfg *config.Config, client *goredis.Client) book.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	return redis.NewBookCache(client, cfg.Cache.KeyPrefix, cfg.Cache.BookTTL)
}

// provideEventPublisher 未启用MQ时事件直接丢弃
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (application.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info("未启用消息队列，领域事件不会发布")
		return application.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return messaging.NewGuardedPublisher(pub, 0, log), cleanup, nil
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(cfg *config.Config, userService user.Service, jwtManager *jwt.Manager, sessions appuser.SessionStore) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessions, cfg.JWT.RefreshTokenExpire)
}

// provideRefreshUseCase 换发时会话续期到Refresh Token的有效期
func provideRefreshUseCase(cfg *config.Config, userRepo user.Repository, jwtManager *jwt.Manager, sessions appuser.SessionStore) *appuser.RefreshUseCase {
	return appuser.NewRefreshUseCase(userRepo, jwtManager, sessions, cfg.JWT.RefreshTokenExpire)
}

// provideManageUsersUseCase 作废标记保留到最晚签发的Refresh Token过期
func provideManageUsersUseCase(cfg *config.Config, userRepo user.Repository, userService user.Service, sessions appuser.SessionStore) *appuser.ManageUsersUseCase {
	return appuser.NewManageUsersUseCase(userRepo, userService, sessions, cfg.JWT.RefreshTokenExpire)
}

// provideRateLimiter 关闭限流时返回nil
func provideRateLimiter(cfg *config.Config, log *zap.Logger) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit, log)
}
