package dto

import "github.com/xiebiao/leafside/internal/domain/user"

// RegisterRequest 注册请求
// 密码强度（至少8位，同时包含字母和数字）由领域服务校验
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email,max=255" example:"reader@example.com"`
	Password    string  `json:"password" binding:"required,max=72" example:"Passw0rd123"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=50" example:"San"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50" example:"Zhang"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20" example:"13800000000"`
	CountryCode *string `json:"country_code" binding:"omitempty,max=5" example:"+86"`
	Gender      *string `json:"gender" binding:"omitempty,max=10" example:"male"`
}

// Profile 转换为领域对象
func (r *RegisterRequest) Profile() user.Profile {
	return user.Profile{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		CountryCode: r.CountryCode,
		Gender:      r.Gender,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"Passw0rd123"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 未传的字段保持不变
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	CountryCode *string `json:"country_code" binding:"omitempty,max=5"`
	Gender      *string `json:"gender" binding:"omitempty,max=10"`
}

func (r *UpdateProfileRequest) Profile() user.Profile {
	return user.Profile{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		CountryCode: r.CountryCode,
		Gender:      r.Gender,
	}
}

// UpdateRolesRequest 整体替换角色
type UpdateRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1,dive,oneof=User Admin" example:"User,Admin"`
}

// ListUsersQuery 管理后台用户列表
type ListUsersQuery struct {
	PageQuery
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	Role    string `form:"role" binding:"omitempty,oneof=User Admin"`
}
