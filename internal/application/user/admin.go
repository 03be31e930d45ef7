package user

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/pkg/logger"
)

// ManageUsersUseCase 管理员用户管理
// 角色变更和删除后立即作废该用户已签发的Token，用户需要重新登录
type ManageUsersUseCase struct {
	userRepo    user.Repository
	userService user.Service
	sessions    SessionStore
	tokenTTL    time.Duration
}

// NewManageUsersUseCase tokenTTL为Token的最长有效期（Refresh Token）
func NewManageUsersUseCase(userRepo user.Repository, userService user.Service, sessions SessionStore, tokenTTL time.Duration) *ManageUsersUseCase {
	return &ManageUsersUseCase{userRepo: userRepo, userService: userService, sessions: sessions, tokenTTL: tokenTTL}
}

// ListUsersRequest 按邮箱或姓名搜索，可按角色过滤
type ListUsersRequest struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}

func (uc *ManageUsersUseCase) List(ctx context.Context, req ListUsersRequest) (*application.Page[*UserInfo], error) {
	page, size := application.NormalizePage(req.Page, req.PageSize)
	users, total, err := uc.userRepo.List(ctx, user.ListParams{
		Page:     page,
		PageSize: size,
		Keyword:  req.Keyword,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}
	return application.NewPage(lo.Map(users, func(u *user.User, _ int) *UserInfo { return ToUserInfo(u) }), total, page, size), nil
}

func (uc *ManageUsersUseCase) Get(ctx context.Context, id uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}

// UpdateRoles operatorID为当前管理员，不能移除自己的Admin角色
func (uc *ManageUsersUseCase) UpdateRoles(ctx context.Context, operatorID, id uint, roles []string) (*UserInfo, error) {
	u, err := uc.userService.UpdateRoles(ctx, operatorID, id, lo.Uniq(roles))
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.RevokeUser(ctx, id, uc.tokenTTL); err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}

func (uc *ManageUsersUseCase) Delete(ctx context.Context, operatorID, id uint) error {
	if err := uc.userService.DeleteUser(ctx, operatorID, id); err != nil {
		return err
	}
	if err := uc.sessions.RevokeUser(ctx, id, uc.tokenTTL); err != nil {
		// 用户已删除，Refresh时查不到用户同样会失败，Access Token最多保留到过期
		logger.FromContext(ctx).Warn("作废已删除用户的Token失败", zap.Uint("user_id", id), zap.Error(err))
	}
	return nil
}
