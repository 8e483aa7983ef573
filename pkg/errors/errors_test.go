package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidation("Invalid book data", nil), http.StatusBadRequest},
		{ErrBindError, http.StatusBadRequest},
		{ErrRouteNotFound, http.StatusNotFound},
		{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{New(ErrCodeISBNDuplicate, "dup"), http.StatusConflict},
		{ErrUnavailable, http.StatusServiceUnavailable},
		{ErrInternal, http.StatusInternalServerError},
		{New(42, "奇怪的错误码"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAppError_WithMessage(t *testing.T) {
	derived := ErrBindError.WithMessage("Request body is required")

	assert.Equal(t, "Request body is required", derived.Message)
	assert.Equal(t, ErrBindError.Code, derived.Code)
	assert.True(t, errors.Is(derived, ErrBindError))
	// 原始预定义错误不受影响
	assert.Equal(t, "Malformed request body", ErrBindError.Message)
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "查询图书失败")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeInternal, err.Code)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrBindError)
	assert.Same(t, ErrBindError, GetAppError(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, ErrCodeInternal, GetAppError(plain).Code)
}

func TestNewValidation(t *testing.T) {
	err := NewValidation("Invalid book data", []FieldError{{Field: "pages", Message: "pages must be greater than 0"}})

	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Len(t, err.Details, 1)
}
