package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// UpdateBookUseCase 部分更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
	cache       book.Cache
	log         *zap.Logger
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, cache book.Cache, log *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, cache: cache, log: log}
}

// UpdateBookRequest 更新请求DTO
// nil表示请求体中没有该字段(保持原值),ISBN来自URL路径
type UpdateBookRequest struct {
	ISBN      string
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// Execute 执行更新用例
// 学习要点:先写数据库再删缓存,下一次读取时回填新值
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook", isbnAttr(req.ISBN))
	defer func() { finish(span, metrics.OpUpdate, err) }()

	updated, err := uc.bookService.UpdateBook(ctx, req.ISBN, book.Patch{
		AmazonURL: req.AmazonURL,
		Author:    req.Author,
		Language:  req.Language,
		Pages:     req.Pages,
		Publisher: req.Publisher,
		Title:     req.Title,
		Year:      req.Year,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, req.ISBN); err != nil {
		uc.log.Warn("失效图书缓存失败", zap.String("isbn", req.ISBN), zap.Error(err))
	}
	return toBookResponse(updated), nil
}
