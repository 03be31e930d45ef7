package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/internal/domain/user/mocks"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功默认User角色", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		svc := user.NewServiceWithMinCost(repo)

		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			u.ID = 7
			return nil
		})

		u, err := svc.Register(ctx, " Reader@Example.com ", "abc12345", user.Profile{FirstName: strPtr("Ada")})
		require.NoError(t, err)
		assert.Equal(t, uint(7), u.ID)
		assert.Equal(t, "reader@example.com", u.Email)
		assert.Equal(t, []string{user.RoleUser}, u.Roles)
		assert.Equal(t, "Ada", u.FirstName)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("abc12345")))
	})

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"邮箱格式错误", "not-an-email", "abc12345", user.ErrInvalidEmail},
		{"密码太短", "a@b.com", "a1", user.ErrWeakPassword},
		{"密码没有数字", "a@b.com", "abcdefgh", user.ErrWeakPassword},
		{"密码没有字母", "a@b.com", "12345678", user.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := user.NewServiceWithMinCost(mocks.NewMockRepository(ctrl))
			_, err := svc.Register(ctx, tt.email, tt.password, user.Profile{})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("邮箱重复", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(user.ErrEmailDuplicate)

		_, err := user.NewServiceWithMinCost(repo).Register(ctx, "a@b.com", "abc12345", user.Profile{})
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("abc12345"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &user.User{ID: 1, Email: "a@b.com", Password: string(hashed), Roles: []string{user.RoleUser}}

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	svc := user.NewServiceWithMinCost(repo)

	repo.EXPECT().FindByEmail(ctx, "a@b.com").Return(stored, nil).Times(2)
	repo.EXPECT().FindByEmail(ctx, "nobody@b.com").Return(nil, user.ErrUserNotFound)

	u, err := svc.Login(ctx, "A@b.com", "abc12345")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)

	_, err = svc.Login(ctx, "a@b.com", "wrong123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	// 用户不存在与密码错误返回相同错误
	_, err = svc.Login(ctx, "nobody@b.com", "abc12345")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestUpdateRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("授予管理员", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(ctx, uint(2)).Return(&user.User{ID: 2, Roles: []string{user.RoleUser}}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		u, err := user.NewServiceWithMinCost(repo).UpdateRoles(ctx, 1, 2, []string{"Admin", "User", "Admin"})
		require.NoError(t, err)
		assert.Equal(t, []string{user.RoleUser, user.RoleAdmin}, u.Roles)
	})

	t.Run("非法角色", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(ctx, uint(2)).Return(&user.User{ID: 2}, nil)

		_, err := user.NewServiceWithMinCost(repo).UpdateRoles(ctx, 1, 2, []string{"Root"})
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("不能取消自己的管理员", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(ctx, uint(1)).Return(&user.User{ID: 1, Roles: []string{user.RoleUser, user.RoleAdmin}}, nil)

		_, err := user.NewServiceWithMinCost(repo).UpdateRoles(ctx, 1, 1, []string{user.RoleUser})
		assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("不存在时创建", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByEmail(ctx, "admin@leafside.local").Return(nil, user.ErrUserNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		u, created, err := user.NewServiceWithMinCost(repo).EnsureAdmin(ctx, "admin@leafside.local", "Admin12345")
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, u.IsAdmin())
	})

	t.Run("已是管理员不做修改", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByEmail(ctx, "admin@leafside.local").
			Return(&user.User{ID: 1, Roles: []string{user.RoleUser, user.RoleAdmin}}, nil)

		_, created, err := user.NewServiceWithMinCost(repo).EnsureAdmin(ctx, "admin@leafside.local", "Admin12345")
		require.NoError(t, err)
		assert.False(t, created)
	})
}
