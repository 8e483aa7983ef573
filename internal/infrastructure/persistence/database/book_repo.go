package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/books-api/internal/domain/book"
)

// bookRepository 图书仓储实现(GORM,MySQL/PostgreSQL通用)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 把数据库错误(主键冲突、记录不存在)转换为业务错误,其余错误包装为500
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 插入图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.Duplicate(b.ISBN)
		}
		return dbError(err, "创建图书失败")
	}
	return nil
}

// List 查询全部图书,按书名排序
// 注意:没有分页,数据量大时需要扩展
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("title ASC").Order("isbn ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NotFound(isbn)
		}
		return nil, dbError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 部分更新图书
// 学习要点:
// 1. MySQL的RowsAffected只统计值真正变化的行,不能用来判断记录是否存在
// 2. 所以先查询确认存在,再用map只UPDATE提供了的列(map不会忽略零值)
// 3. 返回值在内存中合并,避免再查一次
func (r *bookRepository) Update(ctx context.Context, isbn string, patch book.Patch) (*book.Book, error) {
	// 1. 确认存在
	current, err := r.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	// 2. 更新提供了的列
	columns := patchColumns(patch)
	if len(columns) > 0 {
		err := r.db.WithContext(ctx).
			Model(&BookModel{}).
			Where("isbn = ?", isbn).
			Updates(columns).Error
		if err != nil {
			return nil, dbError(err, "更新图书失败")
		}
	}

	// 3. 合并
	patch.Apply(current)
	return current, nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, isbn string) error {
	// 1. 确认存在
	if _, err := r.FindByISBN(ctx, isbn); err != nil {
		return err
	}

	// 2. 删除
	result := r.db.WithContext(ctx).Where("isbn = ?", isbn).Delete(&BookModel{})
	if result.Error != nil {
		return dbError(result.Error, "删除图书失败")
	}
	// 并发删除时另一个请求可能已经删掉了
	if result.RowsAffected == 0 {
		return book.NotFound(isbn)
	}
	return nil
}

// Ping 检查数据库连接
func (r *bookRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return dbError(err, "获取SQL DB失败")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return dbError(err, "数据库不可用")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
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

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ISBN:      model.ISBN,
		AmazonURL: model.AmazonURL,
		Author:    model.Author,
		Language:  model.Language,
		Pages:     model.Pages,
		Publisher: model.Publisher,
		Title:     model.Title,
		Year:      model.Year,
	}
}

// patchColumns 把Patch中提供了的字段转换为列名→值
func patchColumns(p book.Patch) map[string]interface{} {
	columns := make(map[string]interface{})
	if p.AmazonURL != nil {
		columns["amazon_url"] = *p.AmazonURL
	}
	if p.Author != nil {
		columns["author"] = *p.Author
	}
	if p.Language != nil {
		columns["language"] = *p.Language
	}
	if p.Pages != nil {
		columns["pages"] = *p.Pages
	}
	if p.Publisher != nil {
		columns["publisher"] = *p.Publisher
	}
	if p.Title != nil {
		columns["title"] = *p.Title
	}
	if p.Year != nil {
		columns["year"] = *p.Year
	}
	return columns
}
