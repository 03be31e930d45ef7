package user

import (
	"time"

	"github.com/xiebiao/leafside/internal/domain/user"
)

// UserInfo 用户信息（不包含密码）
type UserInfo struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	CountryCode string    `json:"country_code"`
	Gender      string    `json:"gender"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserInfo 领域实体 → 响应DTO
func ToUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		CountryCode: u.CountryCode,
		Gender:      u.Gender,
		Roles:       u.Roles,
		CreatedAt:   u.CreatedAt,
	}
}

// TokenResponse 登录和刷新Token的响应
type TokenResponse struct {
	User         *UserInfo `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"` // Access Token有效期（秒）
	ExpiresAt    time.Time `json:"expires_at"`
}
