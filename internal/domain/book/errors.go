package book

import (
	"fmt"

	apperrors "github.com/xiebiao/books-api/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this isbn already exists")

	// ErrInvalidBook 图书数据不合法
	ErrInvalidBook = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid book data")
)

// NotFound 返回指明ISBN的不存在错误(errors.Is(err, ErrBookNotFound)成立)
func NotFound(isbn string) error {
	return ErrBookNotFound.WithMessage(fmt.Sprintf("There is no book with isbn '%s'", isbn))
}

// Duplicate 返回指明ISBN的重复错误
func Duplicate(isbn string) error {
	return ErrISBNDuplicate.WithMessage(fmt.Sprintf("A book with isbn '%s' already exists", isbn))
}
