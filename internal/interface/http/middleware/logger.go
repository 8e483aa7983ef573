package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/books-api/pkg/response"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// 请求ID相关
const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
//
// 学习要点：
// 1. 请求ID：沿用上游传入的X-Request-ID，没有则生成UUID，并回写到响应头
// 2. 请求级logger：带上request_id/trace_id注入Context，handler和response.Error都用它打日志
// 3. 按状态码分级：5xx→Error，4xx→Warn，其余→Info
// 4. 不记录请求体（可能很大，也可能包含敏感信息）
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 请求ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 2. 请求级logger（Tracing中间件在前，这里已经能拿到trace_id）
		fields := []zap.Field{zap.String(RequestIDKey, requestID)}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields,
				zap.String("trace_id", traceID),
				zap.String("span_id", tracing.ExtractSpanID(c.Request.Context())),
			)
		}
		log := base.With(fields...)
		response.SetLogger(c, log)

		// 3. 处理请求
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 4. 记录请求信息
		status := c.Writer.Status()
		entry := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			entry = append(entry, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("request", entry...)
		case status >= 400:
			log.Warn("request", entry...)
		default:
			log.Info("request", entry...)
		}

		if latency > slowRequestThreshold {
			log.Warn("slow request", zap.String("path", c.Request.URL.Path), zap.Duration("latency", latency))
		}
	}
}
