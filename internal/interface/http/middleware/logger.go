package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/tracing"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestLogger 请求日志
// 生成（或沿用客户端传入的）请求ID，并把带request_id的logger放进请求context，
// 下游通过logger.FromContext打印的日志都能关联到同一个请求
func RequestLogger(log *zap.Logger, slowThreshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		reqLog := log.With(zap.String("request_id", requestID))
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			reqLog = reqLog.With(zap.String("trace_id", traceID))
		}
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLog.Error("request", fields...)
		case slowThreshold > 0 && latency > slowThreshold:
			reqLog.Warn("slow request", fields...)
		default:
			reqLog.Info("request", fields...)
		}
	}
}

// GetRequestID 当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
