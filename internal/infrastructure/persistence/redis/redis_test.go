package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/leafside/internal/domain/book"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
)

func tokenClaims(t *testing.T, manager *jwt.Manager, userID uint) *jwt.Claims {
	t.Helper()
	pair, err := manager.GenerateToken(userID, "a@b.com", []string{"User"})
	require.NoError(t, err)
	claims, err := manager.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return claims
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_Session(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client, "leafside")
	ctx := context.Background()

	_, err := store.GetSession(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{"email": "a@b.com", "ip": "127.0.0.1"}, time.Hour))
	got, err := store.GetSession(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got["email"])
	assert.Equal(t, time.Hour, mr.TTL("leafside:session:1"))

	require.NoError(t, store.DeleteSession(ctx, 1))
	assert.False(t, mr.Exists("leafside:session:1"))
}

func TestSessionStore_RevokeToken(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client, "leafside")
	ctx := context.Background()
	claims := tokenClaims(t, jwt.NewManager("secret", "leafside", time.Hour, 24*time.Hour), 1)

	revoked, err := store.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeToken(ctx, claims.ID, 10*time.Minute))
	revoked, err = store.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(11 * time.Minute)
	revoked, err = store.IsRevoked(ctx, claims)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_RevokeUser(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client, "leafside")
	ctx := context.Background()
	manager := jwt.NewManager("secret", "leafside", time.Hour, 24*time.Hour)

	before := tokenClaims(t, manager, 1)
	other := tokenClaims(t, manager, 2)
	require.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{"email": "a@b.com"}, time.Hour))

	require.NoError(t, store.RevokeUser(ctx, 1, 24*time.Hour))
	assert.False(t, mr.Exists("leafside:session:1"))
	assert.Equal(t, 24*time.Hour, mr.TTL("leafside:invalidated:1"))

	revoked, err := store.IsRevoked(ctx, before)
	require.NoError(t, err)
	assert.True(t, revoked, "作废前签发的Token")

	revoked, err = store.IsRevoked(ctx, other)
	require.NoError(t, err)
	assert.False(t, revoked, "其他用户不受影响")

	// 作废之后重新登录签发的Token仍然有效
	after := *before
	after.IssuedAt = gojwt.NewNumericDate(time.Now().Add(2 * time.Second))
	revoked, err = store.IsRevoked(ctx, &after)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_RevokeExpiredTokenIsNoop(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client, "leafside")

	require.NoError(t, store.RevokeToken(context.Background(), "jti-2", 0))
	assert.Empty(t, mr.Keys())
}

func TestSessionStore_RedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client, "leafside")
	mr.Close()

	_, err := store.IsRevoked(context.Background(), &jwt.Claims{UserID: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(apperrors.GetAppError(err)))
}

func TestBookCache(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewBookCache(client, "leafside", 5*time.Minute)
	ctx := context.Background()

	miss, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, miss)

	b := &book.Book{ID: 3, Title: "三体", Author: "刘慈欣", Price: 4500, IsAvailable: true}
	require.NoError(t, cache.Set(ctx, b))
	assert.Equal(t, 5*time.Minute, mr.TTL("leafside:book:detail:3"))

	hit, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "三体", hit.Title)
	assert.Equal(t, int64(4500), hit.Price)

	require.NoError(t, cache.Delete(ctx, 3))
	miss, err = cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestBookCache_CorruptValue(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewBookCache(client, "leafside", time.Minute)

	require.NoError(t, mr.Set("leafside:book:detail:9", "{not json"))
	_, err := cache.Get(context.Background(), 9)
	assert.Error(t, err)
}
