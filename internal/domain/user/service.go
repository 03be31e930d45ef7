package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 用户领域服务
type Service interface {
	Register(ctx context.Context, email, password string, profile Profile) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	ValidatePassword(hashedPassword, plainPassword string) error

	UpdateProfile(ctx context.Context, id uint, profile Profile) (*User, error)

	// UpdateRoles 管理员替换用户角色，管理员不能移除自己的Admin角色
	UpdateRoles(ctx context.Context, operatorID, id uint, roles []string) (*User, error)

	// DeleteUser 管理员删除用户，不能删除自己
	DeleteUser(ctx context.Context, operatorID, id uint) error

	// EnsureAdmin 启动时保证管理员账号存在，返回是否新建
	EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: 12}
}

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// Register 用户注册
// 邮箱唯一性由数据库UNIQUE索引保证，Repository把重复键转换为ErrEmailDuplicate
func (s *service) Register(ctx context.Context, email, password string, profile Profile) (*User, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	hashed, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u := NewUser(email, hashed, profile)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 用户登录，邮箱不存在和密码错误返回同一个错误
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, id uint, profile Profile) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ApplyProfile(profile)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateRoles(ctx context.Context, operatorID, id uint, roles []string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.SetRoles(roles); err != nil {
		return nil, err
	}
	if operatorID == id && !u.IsAdmin() {
		return nil, ErrCannotDemoteSelf
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, operatorID, id uint) error {
	if operatorID == id {
		return ErrCannotDemoteSelf
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	switch {
	case err == nil:
		if u.IsAdmin() {
			return u, false, nil
		}
		if err := u.SetRoles(append(u.Roles, RoleAdmin)); err != nil {
			return nil, false, err
		}
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, false, err
		}
		return u, false, nil
	case errors.Is(err, ErrUserNotFound):
		u, err = s.Register(ctx, email, password, Profile{})
		if err != nil {
			return nil, false, err
		}
		if err := u.SetRoles([]string{RoleUser, RoleAdmin}); err != nil {
			return nil, false, err
		}
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, false, err
		}
		return u, true, nil
	default:
		return nil, false, err
	}
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// validatePasswordStrength 8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
