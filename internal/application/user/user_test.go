package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	appuser "github.com/xiebiao/leafside/internal/application/user"
	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/internal/domain/user/mocks"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
)

// fakeSessions 内存版会话存储
type fakeSessions struct {
	sessions    map[uint]map[string]interface{}
	revoked     map[string]time.Duration
	invalidated map[uint]time.Duration
	saveErr     error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions:    map[uint]map[string]interface{}{},
		revoked:     map[string]time.Duration{},
		invalidated: map[uint]time.Duration{},
	}
}

func (f *fakeSessions) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions[userID] = data
	return nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, userID uint) error {
	delete(f.sessions, userID)
	return nil
}

func (f *fakeSessions) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeSessions) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	data, ok := f.sessions[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k], _ = v.(string)
	}
	return out, nil
}

func (f *fakeSessions) RevokeUser(_ context.Context, userID uint, ttl time.Duration) error {
	f.invalidated[userID] = ttl
	delete(f.sessions, userID)
	return nil
}

func (f *fakeSessions) IsRevoked(_ context.Context, claims *jwt.Claims) (bool, error) {
	if _, ok := f.revoked[claims.ID]; ok {
		return true, nil
	}
	_, ok := f.invalidated[claims.UserID]
	return ok, nil
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ interface{}) error {
	p.keys = append(p.keys, key)
	return nil
}

func newJWT() *jwt.Manager {
	return jwt.NewManager("test-secret", "leafside", time.Hour, 24*time.Hour)
}

func reader() *user.User {
	return &user.User{ID: 7, Email: "reader@leafside.local", Password: "hash", Roles: []string{user.RoleUser}}
}

func TestRegisterUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	pub := &recordingPublisher{}
	uc := appuser.NewRegisterUseCase(svc, pub)

	first := "Anna"
	svc.EXPECT().Register(gomock.Any(), "reader@leafside.local", "secret123", user.Profile{FirstName: &first}).
		Return(&user.User{ID: 7, Email: "reader@leafside.local", FirstName: "Anna", Roles: []string{user.RoleUser}}, nil)

	info, err := uc.Execute(context.Background(), appuser.RegisterRequest{
		Email:    "reader@leafside.local",
		Password: "secret123",
		Profile:  user.Profile{FirstName: &first},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), info.ID)
	assert.Equal(t, []string{"User"}, info.Roles)
	assert.Equal(t, []string{"user.registered"}, pub.keys)
}

func TestRegisterUseCase_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	pub := &recordingPublisher{}
	uc := appuser.NewRegisterUseCase(svc, pub)

	svc.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, user.ErrEmailDuplicate)

	_, err := uc.Execute(context.Background(), appuser.RegisterRequest{Email: "a@b.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	assert.Empty(t, pub.keys)
}

func TestLoginUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	sessions := newFakeSessions()
	manager := newJWT()
	uc := appuser.NewLoginUseCase(svc, manager, sessions, 24*time.Hour)

	t.Run("success issues tokens with roles", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "reader@leafside.local", "secret123").Return(reader(), nil)

		resp, err := uc.Execute(context.Background(), appuser.LoginRequest{
			Email: "reader@leafside.local", Password: "secret123", ClientIP: "10.0.0.1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)

		claims, err := manager.ParseAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.True(t, claims.HasRole(user.RoleUser))
		assert.Equal(t, "10.0.0.1", sessions.sessions[7]["ip"])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidPassword)

		_, err := uc.Execute(context.Background(), appuser.LoginRequest{Email: "x@y.com", Password: "bad"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("session failure fails login", func(t *testing.T) {
		sessions.saveErr = errors.New("redis down")
		defer func() { sessions.saveErr = nil }()
		svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(reader(), nil)

		resp, err := uc.Execute(context.Background(), appuser.LoginRequest{Email: "reader@leafside.local", Password: "secret123"})
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestRefreshUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	sessions := newFakeSessions()
	sessions.sessions[7] = map[string]interface{}{"email": "reader@leafside.local", "ip": "10.0.0.1"}
	manager := newJWT()
	uc := appuser.NewRefreshUseCase(repo, manager, sessions, 24*time.Hour)

	pair, err := manager.GenerateToken(7, "reader@leafside.local", []string{user.RoleUser})
	require.NoError(t, err)
	refreshClaims, err := manager.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	promoted := reader()
	promoted.Roles = []string{user.RoleUser, user.RoleAdmin}
	repo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(promoted, nil)

	resp, err := uc.Execute(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	claims, err := manager.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(user.RoleAdmin), "新Token应带有数据库中的最新角色")
	assert.Equal(t, "10.0.0.1", sessions.sessions[7]["ip"], "续期保留登录信息")
	assert.Equal(t, "User,Admin", sessions.sessions[7]["roles"])

	// 旧Refresh Token已作废
	_, err = uc.Execute(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Contains(t, sessions.revoked, refreshClaims.ID)
}

func TestRefreshUseCase_RejectsAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := newJWT()
	uc := appuser.NewRefreshUseCase(mocks.NewMockRepository(ctrl), manager, newFakeSessions(), 24*time.Hour)

	pair, err := manager.GenerateToken(7, "reader@leafside.local", nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), pair.AccessToken)
	assert.Error(t, err)
}

func TestLogoutUseCase(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions[7] = map[string]interface{}{"email": "reader@leafside.local"}
	manager := newJWT()
	uc := appuser.NewLogoutUseCase(sessions)

	pair, err := manager.GenerateToken(7, "reader@leafside.local", nil)
	require.NoError(t, err)
	claims, err := manager.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, uc.Execute(context.Background(), claims))
	assert.NotContains(t, sessions.sessions, uint(7))
	assert.InDelta(t, time.Hour.Seconds(), sessions.revoked[pair.TokenID].Seconds(), 5)
}

func TestLogoutUseCase_RefreshTokenNoLongerWorks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	repo := mocks.NewMockRepository(ctrl)
	sessions := newFakeSessions()
	manager := newJWT()
	ctx := context.Background()

	svc.EXPECT().Login(gomock.Any(), "reader@leafside.local", "secret123").Return(reader(), nil)
	tokens, err := appuser.NewLoginUseCase(svc, manager, sessions, 24*time.Hour).
		Execute(ctx, appuser.LoginRequest{Email: "reader@leafside.local", Password: "secret123"})
	require.NoError(t, err)

	claims, err := manager.ParseAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	require.NoError(t, appuser.NewLogoutUseCase(sessions).Execute(ctx, claims))

	// 会话已删除，不会再查询用户
	resp, err := appuser.NewRefreshUseCase(repo, manager, sessions, 24*time.Hour).Execute(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.Nil(t, resp)
}

func TestManageUsersUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	svc := mocks.NewMockService(ctrl)
	sessions := newFakeSessions()
	sessions.sessions[7] = map[string]interface{}{"email": "reader@leafside.local"}
	uc := appuser.NewManageUsersUseCase(repo, svc, sessions, 24*time.Hour)
	ctx := context.Background()

	repo.EXPECT().List(ctx, user.ListParams{Page: 1, PageSize: 100, Role: "Admin"}).
		Return([]*user.User{reader()}, int64(1), nil)
	page, err := uc.List(ctx, appuser.ListUsersRequest{PageSize: 500, Role: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)

	svc.EXPECT().UpdateRoles(ctx, uint(1), uint(7), []string{"User", "Admin"}).
		Return(&user.User{ID: 7, Roles: []string{"User", "Admin"}}, nil)
	info, err := uc.UpdateRoles(ctx, 1, 7, []string{"User", "Admin", "User"})
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Admin"}, info.Roles)
	assert.Equal(t, 24*time.Hour, sessions.invalidated[7], "角色变更后旧Token作废")
	assert.NotContains(t, sessions.sessions, uint(7))

	svc.EXPECT().DeleteUser(ctx, uint(1), uint(1)).Return(user.ErrCannotDemoteSelf)
	assert.ErrorIs(t, uc.Delete(ctx, 1, 1), user.ErrCannotDemoteSelf)
	assert.NotContains(t, sessions.invalidated, uint(1), "删除失败时不作废")

	svc.EXPECT().DeleteUser(ctx, uint(1), uint(9)).Return(nil)
	require.NoError(t, uc.Delete(ctx, 1, 9))
	assert.Contains(t, sessions.invalidated, uint(9))
}

func TestRefreshUseCase_AfterRoleChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	sessions := newFakeSessions()
	sessions.sessions[7] = map[string]interface{}{"email": "reader@leafside.local"}
	manager := newJWT()
	ctx := context.Background()

	pair, err := manager.GenerateToken(7, "reader@leafside.local", []string{user.RoleUser, user.RoleAdmin})
	require.NoError(t, err)

	svc.EXPECT().UpdateRoles(ctx, uint(1), uint(7), []string{user.RoleUser}).
		Return(&user.User{ID: 7, Roles: []string{user.RoleUser}}, nil)
	_, err = appuser.NewManageUsersUseCase(mocks.NewMockRepository(ctrl), svc, sessions, 24*time.Hour).
		UpdateRoles(ctx, 1, 7, []string{user.RoleUser})
	require.NoError(t, err)

	_, err = appuser.NewRefreshUseCase(mocks.NewMockRepository(ctrl), manager, sessions, 24*time.Hour).Execute(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestBootstrapAdminUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appuser.NewBootstrapAdminUseCase(svc, zap.NewNop())

	require.NoError(t, uc.Execute(context.Background(), "", ""))

	svc.EXPECT().EnsureAdmin(gomock.Any(), "admin@leafside.local", "Admin12345").
		Return(&user.User{ID: 1, Email: "admin@leafside.local"}, true, nil)
	require.NoError(t, uc.Execute(context.Background(), "admin@leafside.local", "Admin12345"))
}

var _ application.EventPublisher = (*recordingPublisher)(nil)
