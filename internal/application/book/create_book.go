package book

import (
	"context"

	"github.com/xiebiao/books-api/internal/domain/book"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则由领域服务校验
// 2. 输入输出使用DTO,与HTTP层解耦
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 新增图书请求DTO(HTTP层已完成必填校验)
type CreateBookRequest struct {
	ISBN      string
	AmazonURL string
	Author    string
	Language  string
	Pages     int
	Publisher string
	Title     string
	Year      int
}

// Execute 执行新增用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (resp *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook", isbnAttr(req.ISBN))
	defer func() { finish(span, metrics.OpCreate, err) }()

	created, err := uc.bookService.CreateBook(ctx, &book.Book{
		ISBN:      req.ISBN,
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
	return toBookResponse(created), nil
}
