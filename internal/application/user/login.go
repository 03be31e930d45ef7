package user

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/domain/user"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/metrics"
	"github.com/xiebiao/leafside/pkg/tracing"
)

// SessionStore 会话与Token黑名单，由redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error
	// GetSession 会话不存在时返回ErrUnauthorized
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	RevokeUser(ctx context.Context, userID uint, ttl time.Duration) error
	IsRevoked(ctx context.Context, claims *jwt.Claims) (bool, error)
}

// LoginUseCase 登录：校验密码、签发Token对、记录会话
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	sessions    SessionStore
	sessionTTL  time.Duration
}

// NewLoginUseCase sessionTTL与Refresh Token有效期一致
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessions SessionStore, sessionTTL time.Duration) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "LoginUseCase.Execute")
	defer span.End()

	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Roles)
	if err != nil {
		return nil, err
	}

	// 没有会话的Refresh Token无法换发，会话保存失败即登录失败
	data := map[string]interface{}{
		"email":    u.Email,
		"roles":    strings.Join(u.Roles, ","),
		"login_at": strconv.FormatInt(time.Now().Unix(), 10),
		"ip":       req.ClientIP,
	}
	if err := uc.sessions.SaveSession(ctx, u.ID, data, uc.sessionTTL); err != nil {
		logger.FromContext(ctx).Error("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return newTokenResponse(u, pair), nil
}

// RefreshUseCase 用Refresh Token换发新的Token对
// 要求登录会话仍然存在（注销后不能再换发），角色从数据库重新读取，旧的Refresh Token同时作废
type RefreshUseCase struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewRefreshUseCase(userRepo user.Repository, jwtManager *jwt.Manager, sessions SessionStore, sessionTTL time.Duration) *RefreshUseCase {
	return &RefreshUseCase{userRepo: userRepo, jwtManager: jwtManager, sessions: sessions, sessionTTL: sessionTTL}
}

func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "RefreshUseCase.Execute")
	defer span.End()

	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.sessions.IsRevoked(ctx, claims)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	session, err := uc.sessions.GetSession(ctx, claims.UserID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeUnauthorized) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Roles)
	if err != nil {
		return nil, err
	}

	// 续期会话，保留登录时的信息
	data := make(map[string]interface{}, len(session)+2)
	for k, v := range session {
		data[k] = v
	}
	data["roles"] = strings.Join(u.Roles, ",")
	data["refreshed_at"] = strconv.FormatInt(time.Now().Unix(), 10)
	if err := uc.sessions.SaveSession(ctx, u.ID, data, uc.sessionTTL); err != nil {
		return nil, err
	}

	if err := uc.sessions.RevokeToken(ctx, claims.ID, claims.TTL(time.Now())); err != nil {
		logger.FromContext(ctx).Warn("作废旧Refresh Token失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}
	return newTokenResponse(u, pair), nil
}

// LogoutUseCase 注销：删除会话（之后Refresh Token无法再换发），并把当前Access Token的jti加入黑名单直到过期
type LogoutUseCase struct {
	sessions SessionStore
}

func NewLogoutUseCase(sessions SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, claims *jwt.Claims) error {
	if err := uc.sessions.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}
	return uc.sessions.RevokeToken(ctx, claims.ID, claims.TTL(time.Now()))
}

func newTokenResponse(u *user.User, pair *jwt.TokenPair) *TokenResponse {
	return &TokenResponse{
		User:         ToUserInfo(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		ExpiresAt:    pair.ExpiresAt,
	}
}
