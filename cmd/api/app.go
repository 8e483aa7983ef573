package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/books-api/internal/infrastructure/config"
	"github.com/xiebiao/books-api/internal/infrastructure/persistence/database"
	"github.com/xiebiao/books-api/internal/infrastructure/persistence/redis"
)

// App 组装完成的应用（由Wire生成的InitializeApp创建）
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	server *http.Server
}

func newApp(cfg *config.Config, log *zap.Logger, server *http.Server) *App {
	return &App{cfg: cfg, log: log, server: server}
}

// Run 启动HTTP服务，阻塞直到ctx取消，然后优雅关闭
// 学习要点：
// 1. ListenAndServe在goroutine中运行，启动失败通过channel返回
// 2. 收到退出信号后Shutdown：停止接收新连接，等待进行中的请求完成
// 3. 超过shutdown_timeout仍未完成则强制返回
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP服务启动", zap.String("addr", a.server.Addr), zap.String("mode", a.cfg.Server.Mode))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("正在优雅关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("HTTP服务已关闭")
	return nil
}

// provideHTTPServer 创建http.Server（超时来自配置）
func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// provideDB 创建数据库连接，cleanup在关闭时释放连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Warn("关闭数据库失败", zap.Error(err))
			return
		}
		log.Info("数据库连接已关闭")
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端（未启用时为nil）
func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client == nil {
			return
		}
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis失败", zap.Error(err))
		}
	}
	return client, cleanup, nil
}
