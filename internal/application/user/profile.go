package user

import (
	"context"

	"github.com/xiebiao/leafside/internal/domain/user"
)

// ProfileUseCase 当前用户资料的查询和修改
type ProfileUseCase struct {
	userRepo    user.Repository
	userService user.Service
}

func NewProfileUseCase(userRepo user.Repository, userService user.Service) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo, userService: userService}
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}

// Update 只修改请求中出现的字段
func (uc *ProfileUseCase) Update(ctx context.Context, userID uint, profile user.Profile) (*UserInfo, error) {
	u, err := uc.userService.UpdateProfile(ctx, userID, profile)
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}
