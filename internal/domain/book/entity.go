package book

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/xiebiao/books-api/pkg/errors"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ISBN是业务主键,创建后不可修改(同时作为URL路径参数)
// 2. 其余7个字段创建时全部必填,没有可选字段
// 3. 不含任何持久化细节(GORM tag在infrastructure层的BookModel上)
type Book struct {
	ISBN      string // ISBN号(主键)
	AmazonURL string // 亚马逊链接(不强制校验URL格式)
	Author    string // 作者
	Language  string // 语言
	Pages     int    // 页数(>0)
	Publisher string // 出版社
	Title     string // 书名
	Year      int    // 出版年份
}

// 文本字段最大长度(字符数),与数据库列宽一致
// 超长的值在校验阶段返回400,不会落到数据库变成500
const (
	MaxISBNLength      = 20
	MaxAmazonURLLength = 500
	MaxAuthorLength    = 100
	MaxLanguageLength  = 50
	MaxPublisherLength = 100
	MaxTitleLength     = 200
)

// Validate 校验实体不变量
// 业务规则:
// - 所有文本字段非空且不超过列宽
// - 页数必须>0
func (b *Book) Validate() error {
	var details []apperrors.FieldError
	for _, f := range []textField{
		{"isbn", &b.ISBN, MaxISBNLength},
		{"amazon_url", &b.AmazonURL, MaxAmazonURLLength},
		{"author", &b.Author, MaxAuthorLength},
		{"language", &b.Language, MaxLanguageLength},
		{"publisher", &b.Publisher, MaxPublisherLength},
		{"title", &b.Title, MaxTitleLength},
	} {
		if d, ok := f.check(); !ok {
			details = append(details, d)
		}
	}
	if b.Pages <= 0 {
		details = append(details, positive("pages"))
	}
	if len(details) > 0 {
		return apperrors.NewValidation(ErrInvalidBook.Message, details)
	}
	return nil
}

// textField 文本字段校验规则(value为nil表示未提供)
type textField struct {
	name  string
	value *string
	max   int
}

func (f textField) check() (apperrors.FieldError, bool) {
	switch {
	case f.value == nil:
		return apperrors.FieldError{}, true
	case strings.TrimSpace(*f.value) == "":
		return required(f.name), false
	case utf8.RuneCountInString(*f.value) > f.max:
		return apperrors.FieldError{
			Field:   f.name,
			Message: fmt.Sprintf("%s must be at most %d characters", f.name, f.max),
		}, false
	}
	return apperrors.FieldError{}, true
}

// Patch 部分更新(nil字段表示保持原值)
// ISBN不在其中:主键不可修改
type Patch struct {
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// IsEmpty 是否没有任何需要修改的字段
func (p Patch) IsEmpty() bool {
	return p.AmazonURL == nil && p.Author == nil && p.Language == nil &&
		p.Pages == nil && p.Publisher == nil && p.Title == nil && p.Year == nil
}

// Apply 将修改合并到图书上(未提供的字段保持不变)
func (p Patch) Apply(b *Book) {
	if p.AmazonURL != nil {
		b.AmazonURL = *p.AmazonURL
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Language != nil {
		b.Language = *p.Language
	}
	if p.Pages != nil {
		b.Pages = *p.Pages
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
}

// Validate 校验提供了的字段(规则与Book.Validate一致)
func (p Patch) Validate() error {
	var details []apperrors.FieldError
	for _, f := range []textField{
		{"amazon_url", p.AmazonURL, MaxAmazonURLLength},
		{"author", p.Author, MaxAuthorLength},
		{"language", p.Language, MaxLanguageLength},
		{"publisher", p.Publisher, MaxPublisherLength},
		{"title", p.Title, MaxTitleLength},
	} {
		if d, ok := f.check(); !ok {
			details = append(details, d)
		}
	}
	if p.Pages != nil && *p.Pages <= 0 {
		details = append(details, positive("pages"))
	}
	if len(details) > 0 {
		return apperrors.NewValidation(ErrInvalidBook.Message, details)
	}
	return nil
}

func required(field string) apperrors.FieldError {
	return apperrors.FieldError{Field: field, Message: field + " is required"}
}

func positive(field string) apperrors.FieldError {
	return apperrors.FieldError{Field: field, Message: field + " must be greater than 0"}
}
