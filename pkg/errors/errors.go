package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，HTTP状态码由Code推导（Code / 100）
// 2. Message是返回给客户端的提示信息
// 3. Details是字段级错误明细（仅参数校验失败时存在）
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError 字段级错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 由业务码推导HTTP状态码
// 40400 → 404, 40900 → 409, 50001 → 500
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 || http.StatusText(status) == "" {
		return http.StatusInternalServerError
	}
	return status
}

// WithMessage 复制错误并替换提示信息（保留业务码）
// 派生错误仍然满足 errors.Is(derived, e)
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
		Err:     &sentinel{e},
	}
}

// sentinel 让派生错误仍然能被 errors.Is 匹配到原始预定义错误
type sentinel struct{ base *AppError }

func (s *sentinel) Error() string { return s.base.Error() }
func (s *sentinel) Unwrap() error { return s.base }

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidation 创建参数校验错误（携带字段明细）
func NewValidation(message string, details []FieldError) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: message,
		Details: details,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：前三位即HTTP状态码
// - 400xx: 参数错误
// - 404xx: 资源不存在
// - 409xx: 资源冲突
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 服务不可用（50300-50399）
	ErrCodeUnavailable = 50300

	// 参数错误（40000-40099）
	ErrCodeInvalidParams = 40000 // 参数错误
	ErrCodeBindError     = 40001 // 请求体格式错误

	// 资源错误（40400-40499）
	ErrCodeBookNotFound  = 40401 // 图书不存在
	ErrCodeRouteNotFound = 40402 // 路由不存在

	// 方法不允许（40500）
	ErrCodeMethodNotAllowed = 40500

	// 冲突（40900-40999）
	ErrCodeISBNDuplicate = 40901 // ISBN已存在
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrInternal         = New(ErrCodeInternal, "Internal server error")
	ErrUnavailable      = New(ErrCodeUnavailable, "Service unavailable")
	ErrBindError        = New(ErrCodeBindError, "Malformed request body")
	ErrRouteNotFound    = New(ErrCodeRouteNotFound, "Route not found")
	ErrMethodNotAllowed = New(ErrCodeMethodNotAllowed, "Method not allowed")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}
