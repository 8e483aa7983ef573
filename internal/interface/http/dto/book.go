package dto

import (
	appbook "github.com/xiebiao/books-api/internal/application/book"
)

// CreateBookRequest HTTP新增图书请求
// validator tag说明:
// - 使用指针区分"缺少字段"和"零值"(year=0是合法值,缺少year不合法)
// - required: 字段必须出现
// - min=1: 字符串不能为空
// - max: 不超过数据库列宽(与domain层Max*Length一致)
// - gt=0: 页数必须大于0
// - ISBN不做格式校验(只要求非空)
type CreateBookRequest struct {
	ISBN      *string `json:"isbn" binding:"required,min=1,max=20" example:"8419187940"`
	AmazonURL *string `json:"amazon_url" binding:"required,min=1,max=500" example:"https://www.amazon.com"`
	Author    *string `json:"author" binding:"required,min=1,max=100" example:"John Doe"`
	Language  *string `json:"language" binding:"required,min=1,max=50" example:"English"`
	Pages     *int    `json:"pages" binding:"required,gt=0" example:"100"`
	Publisher *string `json:"publisher" binding:"required,min=1,max=100" example:"Some publisher"`
	Title     *string `json:"title" binding:"required,min=1,max=200" example:"Test Book"`
	Year      *int    `json:"year" binding:"required" example:"2000"`
}

// ToUseCase 转换为应用层DTO(binding通过后所有指针都非nil)
func (r *CreateBookRequest) ToUseCase() appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		ISBN:      *r.ISBN,
		AmazonURL: *r.AmazonURL,
		Author:    *r.Author,
		Language:  *r.Language,
		Pages:     *r.Pages,
		Publisher: *r.Publisher,
		Title:     *r.Title,
		Year:      *r.Year,
	}
}

// UpdateBookRequest HTTP更新图书请求
// 所有字段可选,只更新出现的字段;isbn可以出现但必须与路径一致
type UpdateBookRequest struct {
	ISBN      *string `json:"isbn" example:"8419187940"`
	AmazonURL *string `json:"amazon_url" binding:"omitempty,min=1,max=500" example:"https://www.amazon.com"`
	Author    *string `json:"author" binding:"omitempty,min=1,max=100" example:"John Doe"`
	Language  *string `json:"language" binding:"omitempty,min=1,max=50" example:"Spanish"`
	Pages     *int    `json:"pages" binding:"omitempty,gt=0" example:"1000"`
	Publisher *string `json:"publisher" binding:"omitempty,min=1,max=100" example:"Some publisher"`
	Title     *string `json:"title" binding:"omitempty,min=1,max=200" example:"Updated Test Book 2"`
	Year      *int    `json:"year" example:"2022"`
}

// ToUseCase 转换为应用层DTO
func (r *UpdateBookRequest) ToUseCase(isbn string) appbook.UpdateBookRequest {
	return appbook.UpdateBookRequest{
		ISBN:      isbn,
		AmazonURL: r.AmazonURL,
		Author:    r.Author,
		Language:  r.Language,
		Pages:     r.Pages,
		Publisher: r.Publisher,
		Title:     r.Title,
		Year:      r.Year,
	}
}

// BookEnvelope 单本图书响应 {"book": {...}}
type BookEnvelope struct {
	Book *appbook.BookResponse `json:"book"`
}

// BooksEnvelope 图书列表响应 {"books": [...]}
type BooksEnvelope struct {
	Books []*appbook.BookResponse `json:"books"`
}
