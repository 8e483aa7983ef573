package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	cache       book.Cache
	log         *zap.Logger
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, cache book.Cache, log *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, cache: cache, log: log}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, isbn string) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook", isbnAttr(isbn))
	defer func() { finish(span, metrics.OpDelete, err) }()

	if err := uc.bookService.DeleteBook(ctx, isbn); err != nil {
		return err
	}

	if err := uc.cache.Delete(ctx, isbn); err != nil {
		uc.log.Warn("失效图书缓存失败", zap.String("isbn", isbn), zap.Error(err))
	}
	return nil
}
