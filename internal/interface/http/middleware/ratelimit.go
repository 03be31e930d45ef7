package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/leafside/internal/infrastructure/config"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/metrics"
	"github.com/xiebiao/leafside/pkg/response"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按客户端IP的令牌桶限流
// 长时间没有请求的IP由定时任务清理
type RateLimiter struct {
	rate  rate.Limit
	burst int
	idle  time.Duration
	log   *zap.Logger
	now   func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor

	cron *cron.Cron
}

// NewRateLimiter 创建限流器，调用Start后才会定期清理
func NewRateLimiter(cfg config.RateLimitConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		rate:     rate.Limit(cfg.RequestsPerSec),
		burst:    cfg.Burst,
		idle:     cfg.IdleTimeout,
		log:      log,
		now:      time.Now,
		visitors: make(map[string]*visitor),
		cron:     cron.New(),
	}
}

// Start 按cron表达式（如 "@every 5m"）清理空闲的限流器
func (rl *RateLimiter) Start(schedule string) error {
	if _, err := rl.cron.AddFunc(schedule, func() {
		if n := rl.Cleanup(); n > 0 {
			rl.log.Debug("清理空闲限流器", zap.Int("removed", n))
		}
	}); err != nil {
		return err
	}
	rl.cron.Start()
	return nil
}

// Stop 停止清理任务
func (rl *RateLimiter) Stop() {
	<-rl.cron.Stop().Done()
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			metrics.RateLimitedTotal.Inc()
			response.Abort(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// Cleanup 删除超过idle时间没有请求的IP，返回删除数量
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idle)
	removed := 0
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}
