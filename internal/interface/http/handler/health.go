package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/books-api/internal/domain/book"
	apperrors "github.com/xiebiao/books-api/pkg/errors"
	"github.com/xiebiao/books-api/pkg/response"
)

// readyTimeout 就绪检查的数据库Ping超时
const readyTimeout = 2 * time.Second

// HealthHandler 存活/就绪探针
type HealthHandler struct {
	repo book.Repository
}

// NewHealthHandler 创建探针处理器
func NewHealthHandler(repo book.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Ping 存活探针(进程能响应即可)
// @Summary  存活探针
// @Tags     运维
// @Produce  json
// @Success  200 {object} response.MessageBody
// @Router   /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	response.Message(c, "pong")
}

// Ready 就绪探针(数据库可用才接收流量)
// @Summary  就绪探针
// @Tags     运维
// @Produce  json
// @Success  200 {object} response.MessageBody
// @Failure  503 {object} response.ErrorBody "数据库不可用"
// @Router   /readyz [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		response.Error(c, &apperrors.AppError{
			Code:    apperrors.ErrCodeUnavailable,
			Message: apperrors.ErrUnavailable.Message,
			Err:     err,
		})
		return
	}
	response.Message(c, "ready")
}
