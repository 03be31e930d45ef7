package cart

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 购物车仓储接口
type Repository interface {
	// FindByUserID 连同条目一起加载，不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// LockByUserID 锁定购物车行（SELECT ... FOR UPDATE）后加载条目，必须在事务中调用
	// 结算时用它串行化同一用户的并发下单
	LockByUserID(ctx context.Context, userID uint) (*Cart, error)

	// Create 创建购物车；并发创建时返回已存在的那一个
	Create(ctx context.Context, c *Cart) error

	// SaveItem 新条目插入，已有条目（ID非0）更新数量和快照
	SaveItem(ctx context.Context, item *Item) error

	// DeleteItem 删除条目，返回是否真的删除了
	DeleteItem(ctx context.Context, cartID, bookID uint) (bool, error)

	// ClearItems 清空购物车，返回删除的条目数
	ClearItems(ctx context.Context, cartID uint) (int64, error)

	// List 管理后台分页查看所有购物车
	List(ctx context.Context, page, pageSize int) ([]*Cart, int64, error)
}
