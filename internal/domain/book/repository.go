package book

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 图书仓储接口
type Repository interface {
	Create(ctx context.Context, b *Book) error

	// FindByID 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询，不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	Update(ctx context.Context, b *Book) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID SELECT ... FOR UPDATE，下单时锁定价格
	LockByID(ctx context.Context, id uint) (*Book, error)
}

// Cache 图书详情缓存（Cache-Aside），未命中返回nil, nil
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)
	Set(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id uint) error
}

// 排序方式
const (
	SortPriceAsc      = "price_asc"
	SortPriceDesc     = "price_desc"
	SortCreatedAtDesc = "created_at_desc"
	SortTitleAsc      = "title_asc"
)

// ListParams 列表查询参数
type ListParams struct {
	Page          int
	PageSize      int
	Keyword       string // 搜索标题、作者、出版社
	Genre         string
	Author        string
	OnlyAvailable bool
	SortBy        string
}
