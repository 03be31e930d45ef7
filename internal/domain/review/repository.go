package review

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 评价仓储接口
type Repository interface {
	// Create (user, book)唯一索引冲突时返回ErrReviewDuplicate
	Create(ctx context.Context, r *Review) error

	// FindByID 不存在返回ErrReviewNotFound
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByUserAndBook 不存在返回ErrReviewNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uint) error

	// ListByBook 按创建时间倒序
	ListByBook(ctx context.Context, bookID uint, onlyApproved bool) ([]*Review, error)

	// ListPending 待审核评价，按创建时间正序
	ListPending(ctx context.Context, page, pageSize int) ([]*Review, int64, error)

	// Summary 平均分和数量，没有评价时平均分为0
	Summary(ctx context.Context, bookID uint, onlyApproved bool) (*Rating, error)
}
