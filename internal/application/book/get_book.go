package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// GetBookUseCase 图书详情查询用例
// 设计说明(Cache-Aside):
// 1. 先读缓存,命中直接返回
// 2. 未命中查数据库,再回填缓存
// 3. 缓存出错只记录日志,降级为直接查数据库(此时不回填)
// 4. 回填带上读缓存时拿到的版本号:读库期间如果有更新/删除让缓存失效,
//    回填会被放弃,不会把旧值或已删除的图书写回缓存
type GetBookUseCase struct {
	bookService book.Service
	cache       book.Cache
	log         *zap.Logger
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache book.Cache, log *zap.Logger) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache, log: log}
}

// Execute 执行详情查询用例
func (uc *GetBookUseCase) Execute(ctx context.Context, isbn string) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook", isbnAttr(isbn))
	defer func() { finish(span, metrics.OpGet, err) }()

	// 1. 读缓存
	cached, version, cacheErr := uc.cache.Get(ctx, isbn)
	switch {
	case cacheErr != nil:
		metrics.RecordCacheRequest(metrics.CacheError)
		uc.log.Warn("读取图书缓存失败", zap.String("isbn", isbn), zap.Error(cacheErr))
	case cached != nil:
		metrics.RecordCacheRequest(metrics.CacheHit)
		return toBookResponse(cached), nil
	default:
		metrics.RecordCacheRequest(metrics.CacheMiss)
	}

	// 2. 查数据库
	b, err := uc.bookService.GetBook(ctx, isbn)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if cacheErr == nil {
		if err := uc.cache.Set(ctx, b, version); err != nil {
			uc.log.Warn("写入图书缓存失败", zap.String("isbn", isbn), zap.Error(err))
		}
	}
	return toBookResponse(b), nil
}
