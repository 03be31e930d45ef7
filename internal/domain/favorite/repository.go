package favorite

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 收藏仓储接口
type Repository interface {
	// Create 唯一索引冲突时返回ErrFavoriteDuplicate
	Create(ctx context.Context, f *Favorite) error

	// Delete 返回是否真的删除了
	Delete(ctx context.Context, userID, bookID uint) (bool, error)

	Exists(ctx context.Context, userID, bookID uint) (bool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)

	// ListByUser 按收藏时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Favorite, error)
}
