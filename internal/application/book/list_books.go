package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 返回全部图书,按书名排序,不分页
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询用例
// 注意:没有数据时返回空切片而不是nil,JSON序列化为[]而不是null
func (uc *ListBooksUseCase) Execute(ctx context.Context) (resp []*BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() { finish(span, metrics.OpList, err) }()

	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	resp = make([]*BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, toBookResponse(b))
	}
	span.SetAttributes(attribute.Int("book.count", len(resp)))
	return resp, nil
}
