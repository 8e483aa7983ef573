// Package tracing 封装OpenTelemetry分布式追踪
//
// 使用方式：
//
//	shutdown, err := tracing.InitTracer(ctx, tracing.Config{
//	    Enabled:     true,
//	    ServiceName: "books-api",
//	    Endpoint:    "localhost:4317",
//	})
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "books-api/application", "CreateBook")
//	defer span.End()
//
// 未启用时不会创建Exporter，全局TracerProvider保持为no-op，StartSpan依然可以安全调用
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Config 追踪配置
type Config struct {
	Enabled     bool
	ServiceName string
	Endpoint    string  // OTLP gRPC端点，如 localhost:4317
	Insecure    bool    // 禁用TLS（本地Jaeger/Collector）
	SampleRatio float64 // 采样比例，<=0 或 >=1 表示全部采样
}

// ShutdownFunc 关闭TracerProvider，刷新剩余Span
type ShutdownFunc func(ctx context.Context) error

// InitTracer 初始化全局TracerProvider
//
// 步骤：
// 1. 创建OTLP gRPC Exporter
// 2. 创建Resource（service.name等属性）
// 3. 创建TracerProvider（采样策略 + 批量处理器）
// 4. 设置全局TracerProvider与W3C传播器
func InitTracer(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	// 传播器无论是否启用都设置，保证traceparent头可以透传
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	// 1. 创建OTLP gRPC Exporter（连接是惰性的，Collector不可用不会阻塞启动）
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建TracerProvider
	tp := NewTracerProvider(res, sdktrace.WithBatcher(exporter), cfg.SampleRatio)

	// 4. 设置全局TracerProvider
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// NewTracerProvider 按采样比例创建TracerProvider
// 测试中可以传入tracetest.SpanRecorder对应的处理器
func NewTracerProvider(res *resource.Resource, processor sdktrace.TracerProviderOption, ratio float64) *sdktrace.TracerProvider {
	sampler := sdktrace.AlwaysSample()
	if ratio > 0 && ratio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sampler),
		processor,
	}
	if res != nil {
		opts = append(opts, sdktrace.WithResource(res))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// StartSpan 创建Span
// - 如果ctx包含父Span，新Span会自动成为子Span
// - 如果ctx不包含父Span，新Span成为根Span
func StartSpan(ctx context.Context, tracerName, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// RecordError 将错误记录到Span并标记状态
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ExtractTraceID 从Context提取TraceID（无有效Span时返回空字符串）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
