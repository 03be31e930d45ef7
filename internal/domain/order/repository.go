package order

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 订单仓储接口，通过context参与事务
type Repository interface {
	// Create 订单和明细在同一事务中创建
	Create(ctx context.Context, o *Order) error

	// FindByID 包含订单明细，不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// UpdateStatus 只更新状态和更新时间
	UpdateStatus(ctx context.Context, o *Order) error

	Delete(ctx context.Context, id uint) error

	// ListByUserID 用户自己的订单，按创建时间倒序
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// List 管理后台查询，Status为0表示全部
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)
}

// ListParams 管理后台订单查询参数
type ListParams struct {
	Page     int
	PageSize int
	Status   Status
	UserID   uint
}
