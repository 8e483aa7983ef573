package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务负责业务规则校验(实体不变量),然后委托给Repository
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 新增图书
	// 业务规则:所有字段必填,页数>0,ISBN不能重复
	CreateBook(ctx context.Context, book *Book) (*Book, error)

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBook 根据ISBN获取图书
	GetBook(ctx context.Context, isbn string) (*Book, error)

	// UpdateBook 部分更新图书(ISBN不可修改)
	// 业务规则:提供了的字段必须合法,未提供的字段保持不变
	UpdateBook(ctx context.Context, isbn string, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, isbn string) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	// 1. 实体不变量校验
	if err := book.Validate(); err != nil {
		return nil, err
	}

	// 2. 持久化(ISBN重复由数据库主键约束保证,Repository转换为Duplicate错误)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

// GetBook 根据ISBN获取图书
// 路径上的ISBN原样查询:空白或超长的ISBN不可能存在,结果就是NotFound
func (s *service) GetBook(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, isbn string, patch Patch) (*Book, error) {
	// 1. 校验提供了的字段(原记录本身已合法,合并后依然合法)
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	// 2. 没有需要修改的字段时直接返回当前记录(同样需要区分不存在)
	if patch.IsEmpty() {
		return s.repo.FindByISBN(ctx, isbn)
	}

	// 3. 持久化
	return s.repo.Update(ctx, isbn, patch)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}
