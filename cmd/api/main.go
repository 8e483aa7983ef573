package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/books-api/internal/infrastructure/config"
	"github.com/xiebiao/books-api/internal/infrastructure/logger"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// @title        Books API
// @version      1.0
// @description  按ISBN管理图书的REST接口
// @host         localhost:8080
// @BasePath     /

// main 主程序入口
// 启动顺序：配置 → 日志 → Tracer → Wire组装应用 → HTTP服务
// 关闭顺序相反：HTTP服务 → Redis/数据库 → Tracer → 日志
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("服务异常退出", zap.Error(err))
	}
	zlog.Info("服务已完全关闭")
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	// SIGINT/SIGTERM触发优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. 初始化链路追踪（未启用时为no-op）
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			zlog.Warn("关闭Tracer失败", zap.Error(err))
		}
	}()

	// 4. 依赖注入（Wire生成）
	app, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		return err
	}
	defer cleanup()

	// 5. 运行直到收到退出信号
	return app.Run(ctx)
}
