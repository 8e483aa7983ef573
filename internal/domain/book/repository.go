package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 每个方法对应一条SQL语句,不跨语句开启事务
// 3. 不存在时返回NotFound(isbn),ISBN重复时返回Duplicate(isbn)
type Repository interface {
	// Create 插入图书
	Create(ctx context.Context, book *Book) error

	// List 查询全部图书(按书名排序)
	List(ctx context.Context) ([]*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 部分更新,返回更新后的完整记录
	// 先查询确认存在,不存在时不执行UPDATE
	Update(ctx context.Context, isbn string, patch Patch) (*Book, error)

	// Delete 物理删除(没有软删除)
	Delete(ctx context.Context, isbn string) error

	// Ping 检查存储可用性(就绪探针使用)
	Ping(ctx context.Context) error
}

// Cache 图书详情缓存接口
// 约定:
// 1. 缓存只是加速手段,调用方不应因缓存错误而使请求失败
// 2. Get返回的version用于随后的Set:期间发生过Delete则version变化,Set放弃写入,
//    避免"读库→删除→回填旧值"把已删除或旧版本的图书写回缓存
type Cache interface {
	// Get 未命中返回(nil, version, nil)
	Get(ctx context.Context, isbn string) (*Book, int64, error)
	// Set 仅当version与Get时一致才写入
	Set(ctx context.Context, book *Book, version int64) error
	// Delete 删除缓存并推进version
	Delete(ctx context.Context, isbn string) error
}

// NopCache 未启用缓存时使用
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*Book, int64, error) { return nil, 0, nil }
func (NopCache) Set(context.Context, *Book, int64) error           { return nil }
func (NopCache) Delete(context.Context, string) error              { return nil }
