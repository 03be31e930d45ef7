package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/response"
)

// Checker 依赖检查，返回nil表示可用
type Checker func(ctx context.Context) error

// HealthHandler 存活和就绪检查
type HealthHandler struct {
	checks  map[string]Checker
	timeout time.Duration
}

// NewHealthHandler 检查MySQL和Redis
func NewHealthHandler(db *gorm.DB, rdb *goredis.Client) *HealthHandler {
	return NewHealthHandlerWithChecks(map[string]Checker{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})
}

func NewHealthHandlerWithChecks(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// HealthStatus 就绪检查结果
type HealthStatus struct {
	Status     string            `json:"status" example:"healthy"`
	Components map[string]string `json:"components"`
}

// Ping 存活检查
// @Summary      存活检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}

// Health 就绪检查
// @Summary      就绪检查
// @Description  任一依赖不可用时返回503
// @Tags         系统
// @Produce      json
// @Success      200 {object} response.Response{data=HealthStatus}
// @Failure      503 {object} response.Response{data=HealthStatus}
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := HealthStatus{Status: "healthy", Components: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.FromContext(ctx).Warn("依赖检查失败", zap.String("component", name), zap.Error(err))
			status.Components[name] = "down"
			status.Status = "unhealthy"
			continue
		}
		status.Components[name] = "up"
	}

	if status.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code:    apperrors.ErrCodeInternal,
			Message: "服务不可用",
			Data:    status,
		})
		return
	}
	response.Success(c, status)
}
