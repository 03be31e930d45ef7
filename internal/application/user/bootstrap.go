package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/domain/user"
)

// BootstrapAdminUseCase 启动时确保配置中的管理员账号存在
// 已存在的普通账号会被提升为管理员，密码不变
type BootstrapAdminUseCase struct {
	userService user.Service
	log         *zap.Logger
}

func NewBootstrapAdminUseCase(userService user.Service, log *zap.Logger) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{userService: userService, log: log}
}

// Execute email为空时跳过
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, email, password string) error {
	if email == "" {
		uc.log.Info("未配置管理员账号，跳过初始化")
		return nil
	}

	u, created, err := uc.userService.EnsureAdmin(ctx, email, password)
	if err != nil {
		return err
	}
	if created {
		uc.log.Info("已创建管理员账号", zap.String("email", u.Email), zap.Uint("user_id", u.ID))
	} else {
		uc.log.Info("管理员账号已就绪", zap.String("email", u.Email), zap.Uint("user_id", u.ID))
	}
	return nil
}
