//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/books-api/internal/application/book"
	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/internal/infrastructure/config"
	"github.com/xiebiao/books-api/internal/infrastructure/persistence/database"
	"github.com/xiebiao/books-api/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/books-api/internal/interface/http/handler"
	"github.com/xiebiao/books-api/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖：数据库、Redis、仓储与缓存
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	database.NewBookRepository,
	redis.NewBookCache,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层依赖：每个用例一个构造函数
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// interfaceSet 接口层依赖：Handler、路由、HTTP Server
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewHealthHandler,
	router.New,
	provideHTTPServer,
)

// InitializeApp 初始化整个应用
// 配置和日志由main先创建（Tracer初始化也需要它们），作为Injector参数传入
// 返回的cleanup按创建的逆序关闭Redis和数据库
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
