package user

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 用户仓储接口
// 接口定义在domain层，实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 创建用户，邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, u *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, u *User) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	// List 分页查询（管理后台）
	List(ctx context.Context, params ListParams) ([]*User, int64, error)
}

// ListParams 用户列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string // 邮箱或姓名
	Role     string
}
