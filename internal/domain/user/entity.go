package user

import (
	"slices"
	"strings"
	"time"
)

// 角色
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// ValidRoles 系统支持的全部角色
var ValidRoles = []string{RoleUser, RoleAdmin}

// User 用户实体（聚合根）
// 密码以bcrypt哈希存储，领域实体不依赖GORM tag
type User struct {
	ID          uint
	Email       string
	Password    string // bcrypt哈希值
	FirstName   string
	LastName    string
	PhoneNumber string
	CountryCode string
	Gender      string
	Roles       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser 创建新用户（默认普通用户角色）
func NewUser(email, hashedPassword string, profile Profile) *User {
	now := time.Now()
	u := &User{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hashedPassword,
		Roles:     []string{RoleUser},
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.ApplyProfile(profile)
	return u
}

// Profile 可由用户本人修改的资料，nil表示不修改
type Profile struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	CountryCode *string
	Gender      *string
}

// ApplyProfile 更新个人资料（领域行为）
func (u *User) ApplyProfile(p Profile) {
	if p.FirstName != nil {
		u.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		u.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}
	if p.CountryCode != nil {
		u.CountryCode = strings.TrimSpace(*p.CountryCode)
	}
	if p.Gender != nil {
		u.Gender = strings.TrimSpace(*p.Gender)
	}
	u.UpdatedAt = time.Now()
}

// FullName 姓名（下单时作为默认收货人）
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole 是否拥有角色
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// SetRoles 替换角色集合（去重，保持ValidRoles中的顺序）
func (u *User) SetRoles(roles []string) error {
	if len(roles) == 0 {
		return ErrInvalidRole
	}
	for _, r := range roles {
		if !slices.Contains(ValidRoles, r) {
			return ErrInvalidRole
		}
	}
	normalized := make([]string, 0, len(ValidRoles))
	for _, r := range ValidRoles {
		if slices.Contains(roles, r) {
			normalized = append(normalized, r)
		}
	}
	u.Roles = normalized
	u.UpdatedAt = time.Now()
	return nil
}
