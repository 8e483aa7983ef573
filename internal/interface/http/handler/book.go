package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/books-api/internal/application/book"
	"github.com/xiebiao/books-api/internal/interface/http/dto"
	"github.com/xiebiao/books-api/internal/interface/http/validation"
	"github.com/xiebiao/books-api/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明:
// 1. 只负责HTTP协议相关工作:绑定参数、调用用例、输出响应
// 2. 错误统一交给response.Error,由AppError的业务码决定HTTP状态码
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  所有字段必填,pages必须大于0,isbn不能重复
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookEnvelope
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      409 {object} response.ErrorBody "ISBN已存在"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与校验
	var req dto.CreateBookRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBookUseCase.Execute(c.Request.Context(), req.ToUseCase())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.BookEnvelope{Book: result})
}

// ListBooks 查询全部图书
// @Summary      图书列表
// @Description  返回全部图书,按书名排序
// @Tags         图书
// @Produce      json
// @Success      200 {object} dto.BooksEnvelope
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BooksEnvelope{Books: result})
}

// GetBook 查询图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} dto.BookEnvelope
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{isbn} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BookEnvelope{Book: result})
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求体中出现的字段,isbn不可修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        isbn    path string                true "ISBN"
// @Param        request body dto.UpdateBookRequest true "要修改的字段"
// @Success      200 {object} dto.BookEnvelope
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{isbn} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	isbn := c.Param("isbn")

	// 1. 参数绑定与校验
	var req dto.UpdateBookRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := validation.CheckISBNUnchanged(isbn, req.ISBN); err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.updateBookUseCase.Execute(c.Request.Context(), req.ToUseCase(isbn))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BookEnvelope{Book: result})
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.MessageBody
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /books/{isbn} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("isbn")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Book deleted")
}
