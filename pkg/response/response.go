package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/books-api/pkg/errors"
)

// ErrorBody 错误响应体
// 格式：{"error": {"status": 404, "code": 40401, "message": "...", "errors": [...]}}
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Status  int                    `json:"status"`
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// MessageBody 仅包含提示信息的成功响应（如删除成功）
type MessageBody struct {
	Message string `json:"message"`
}

// loggerKey gin.Context中存放请求级logger的key（由日志中间件注入）
const loggerKey = "logger"

// SetLogger 将请求级logger注入Context
func SetLogger(c *gin.Context, logger *zap.Logger) {
	c.Set(loggerKey, logger)
}

// Logger 获取请求级logger（未注入时返回Nop）
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200响应，body为{"message": "..."}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	result, err := uc.Execute(ctx, isbn)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 5xx记录内部错误（包含底层原因），4xx属于正常业务分支不打错误日志
	// 5xx的Message是内部描述，不返回给客户端
	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
		Logger(c).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Error: ErrorDetail{
			Status:  status,
			Code:    appErr.Code,
			Message: message,
			Errors:  appErr.Details,
		},
	})
}
