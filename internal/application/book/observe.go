package book

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/books-api/internal/domain/book"
	apperrors "github.com/xiebiao/books-api/pkg/errors"
	"github.com/xiebiao/books-api/pkg/metrics"
	"github.com/xiebiao/books-api/pkg/tracing"
)

// tracerName 应用层Span所属的Tracer
const tracerName = "books-api/application/book"

// isbnAttr Span上的ISBN属性
func isbnAttr(isbn string) attribute.KeyValue {
	return attribute.String("book.isbn", isbn)
}

// finish 用例结束时统一记录指标和Span状态
// 学习要点:业务错误(4xx)只打标签不标记Span为Error,只有5xx才算失败
func finish(span trace.Span, operation string, err error) {
	result := resultOf(err)
	metrics.RecordBookOperation(operation, result)
	span.SetAttributes(attribute.String("book.result", result))
	if result == metrics.ResultError {
		tracing.RecordError(span, err)
	}
	span.End()
}

// resultOf 错误 → 指标result标签
func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, book.ErrBookNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, book.ErrISBNDuplicate):
		return metrics.ResultConflict
	}
	if appErr := apperrors.GetAppError(err); appErr.HTTPStatus() == 400 {
		return metrics.ResultInvalid
	}
	return metrics.ResultError
}
