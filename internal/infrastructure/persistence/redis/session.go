package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
)

// SessionStore 会话存储
// 记录登录会话，维护按jti吊销的Token黑名单，以及按用户整体作废的时间点
// Key: {prefix}:session:{user_id}、{prefix}:revoked:{jti}、{prefix}:invalidated:{user_id}
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

// SaveSession 保存登录信息，过期时间与Refresh Token一致
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	key := s.sessionKey(userID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, data)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}
	return nil
}

// GetSession 会话不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, s.sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, s.sessionKey(userID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}
	return nil
}

// RevokeToken 把Token的jti加入黑名单，ttl取Token剩余有效期，过期后自动清理
func (s *SessionStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.revokedKey(tokenID), "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "吊销Token失败")
	}
	return nil
}

// IsRevoked jti在黑名单中，或签发时间不晚于用户被整体作废的时间点
func (s *SessionStore) IsRevoked(ctx context.Context, claims *jwt.Claims) (bool, error) {
	pipe := s.client.Pipeline()
	exists := pipe.Exists(ctx, s.revokedKey(claims.ID))
	since := pipe.Get(ctx, s.invalidatedKey(claims.UserID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, apperrors.Wrap(err, "检查Token黑名单失败")
	}
	if exists.Val() > 0 {
		return true, nil
	}

	if since.Err() != nil {
		return false, nil
	}
	cutoff, err := strconv.ParseInt(since.Val(), 10, 64)
	if err != nil {
		return false, apperrors.Wrap(err, "解析作废时间失败")
	}
	// iat精度为秒，同一秒内签发的Token一并作废
	return claims.IssuedAt == nil || claims.IssuedAt.Unix() <= cutoff, nil
}

// RevokeUser 作废用户此前签发的全部Token并删除会话，用于角色变更和删除用户
// ttl取Token的最长有效期，过期后标记自动清理
func (s *SessionStore) RevokeUser(ctx context.Context, userID uint, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.invalidatedKey(userID), time.Now().Unix(), ttl)
	pipe.Del(ctx, s.sessionKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "作废用户Token失败")
	}
	return nil
}

func (s *SessionStore) sessionKey(userID uint) string {
	return fmt.Sprintf("%s:session:%d", s.prefix, userID)
}

func (s *SessionStore) revokedKey(tokenID string) string {
	return fmt.Sprintf("%s:revoked:%s", s.prefix, tokenID)
}

func (s *SessionStore) invalidatedKey(userID uint) string {
	return fmt.Sprintf("%s:invalidated:%d", s.prefix, userID)
}
