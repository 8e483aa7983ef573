package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// tracerName HTTP层Span所属的Tracer
const tracerName = "books-api/http"

// Tracing 链路追踪中间件
// 设计说明：
// 1. 从请求头提取W3C traceparent，上游已有Trace时作为父Span
// 2. 每个请求创建一个Server Span，名称使用路由模板（GET /books/:isbn）
// 3. 把带Span的Context写回Request，后续用例的Span自动成为子Span
// 4. 5xx标记Span为Error，4xx属于正常业务分支
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := routeOf(c)
		ctx, span := otel.Tracer(tracerName).Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Request.Method),
				semconv.HTTPRoute(route),
				semconv.URLPath(c.Request.URL.Path),
				semconv.ClientAddress(c.ClientIP()),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		if status >= http.StatusInternalServerError {
			if len(c.Errors) > 0 {
				span.RecordError(c.Errors.Last().Err)
			}
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// routeOf 返回路由模板，未匹配的路由统一归为一类（避免高基数）
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
