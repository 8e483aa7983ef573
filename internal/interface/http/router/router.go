package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/books-api/docs" // 注册swagger文档
	"github.com/xiebiao/books-api/internal/infrastructure/config"
	"github.com/xiebiao/books-api/internal/interface/http/handler"
	"github.com/xiebiao/books-api/internal/interface/http/middleware"
	"github.com/xiebiao/books-api/internal/interface/http/validation"
	apperrors "github.com/xiebiao/books-api/pkg/errors"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/response"
)

// New 创建并配置Gin引擎
// 设计说明：
// 1. 中间件顺序：Tracing → Logger → Metrics → Recovery
//   - Tracing最先执行，Logger才能拿到trace_id
//   - Recovery在最内层，panic转成500后Logger和Metrics照常记录
//
// 2. 未知路由返回JSON 404，已知路由用错方法返回JSON 405
// 3. Swagger在release模式下默认关闭（server.swagger=true时开启）
func New(cfg *config.Config, log *zap.Logger, bookHandler *handler.BookHandler, healthHandler *handler.HealthHandler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	validation.Setup()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.Recovery(),
	)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, apperrors.ErrMethodNotAllowed)
	})

	// 运维接口
	r.GET("/ping", healthHandler.Ping)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger文档 http://localhost:8080/swagger/index.html
	if cfg.Server.Mode != gin.ReleaseMode || cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 图书资源
	books := r.Group("/books")
	{
		books.POST("", bookHandler.CreateBook)
		books.GET("", bookHandler.ListBooks)
		books.GET("/:isbn", bookHandler.GetBook)
		books.PUT("/:isbn", bookHandler.UpdateBook)
		books.DELETE("/:isbn", bookHandler.DeleteBook)
	}

	return r
}
