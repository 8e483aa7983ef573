package book

import (
	"github.com/xiebiao/books-api/internal/domain/book"
)

// BookResponse 图书响应DTO
// 字段名与请求体保持一致(snake_case)
type BookResponse struct {
	ISBN      string `json:"isbn" example:"8419187940"`
	AmazonURL string `json:"amazon_url" example:"https://www.amazon.com"`
	Author    string `json:"author" example:"John Doe"`
	Language  string `json:"language" example:"English"`
	Pages     int    `json:"pages" example:"100"`
	Publisher string `json:"publisher" example:"Some publisher"`
	Title     string `json:"title" example:"Test Book"`
	Year      int    `json:"year" example:"2000"`
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ISBN:      b.ISBN,
		AmazonURL: b.AmazonURL,
		Author:    b.Author,
		Language:  b.Language,
		Pages:     b.Pages,
		Publisher: b.Publisher,
		Title:     b.Title,
		Year:      b.Year,
	}
}
