package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/infrastructure/config"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
	"github.com/xiebiao/leafside/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, claims *jwt.Claims) (bool, error) {
	return f.revoked[claims.ID], f.err
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAuthEngine(revocations RevocationChecker) (*gin.Engine, *jwt.Manager) {
	manager := jwt.NewManager("test-secret", "leafside", time.Hour, 24*time.Hour)
	auth := NewAuthMiddleware(manager, revocations)

	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		response.Success(c, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireRole("Admin"), func(c *gin.Context) {
		response.Success(c, nil)
	})
	r.GET("/public", auth.OptionalAuth(), func(c *gin.Context) {
		response.Success(c, gin.H{"admin": HasRole(c, "Admin"), "user_id": GetUserID(c)})
	})
	return r, manager
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	checker := &fakeRevocations{revoked: map[string]bool{}}
	r, manager := newAuthEngine(checker)

	pair, err := manager.GenerateToken(7, "reader@example.com", []string{"User"})
	require.NoError(t, err)

	t.Run("缺少Token", func(t *testing.T) {
		w := get(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, decode(t, w).Code)
	})

	t.Run("Token格式错误", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, decode(t, w).Code)
	})

	t.Run("Refresh Token不能访问API", func(t *testing.T) {
		w := get(r, "/me", pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("合法Token", func(t *testing.T) {
		w := get(r, "/me", pair.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("注销后的Token", func(t *testing.T) {
		checker.revoked[pair.TokenID] = true
		defer delete(checker.revoked, pair.TokenID)

		w := get(r, "/me", pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, decode(t, w).Code)
	})
}

func TestRequireAuth_RedisDown(t *testing.T) {
	r, manager := newAuthEngine(&fakeRevocations{err: errors.New("connection refused")})
	pair, err := manager.GenerateToken(7, "reader@example.com", []string{"User"})
	require.NoError(t, err)

	w := get(r, "/me", pair.AccessToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
}

func TestRequireRole(t *testing.T) {
	r, manager := newAuthEngine(&fakeRevocations{})

	userPair, err := manager.GenerateToken(1, "u@example.com", []string{"User"})
	require.NoError(t, err)
	adminPair, err := manager.GenerateToken(2, "a@example.com", []string{"User", "Admin"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", userPair.AccessToken).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", adminPair.AccessToken).Code)
}

func TestOptionalAuth(t *testing.T) {
	r, manager := newAuthEngine(&fakeRevocations{})
	adminPair, err := manager.GenerateToken(2, "a@example.com", []string{"Admin"})
	require.NoError(t, err)

	w := get(r, "/public", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":false`)

	// 无效Token按匿名处理
	w = get(r, "/public", "not-a-jwt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	w = get(r, "/public", adminPair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":true`)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{
		RequestsPerSec: 0.001,
		Burst:          2,
		IdleTimeout:    time.Minute,
	}, zap.NewNop())

	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	// 按IP独立计数
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSec: 1, Burst: 1, IdleTimeout: time.Minute}, zap.NewNop())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(30 * time.Second)
	rl.allow("10.0.0.2")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, rl.Cleanup())
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{
		AllowOrigins:     []string{"https://shop.example.com"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	r.GET("/api/books", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("预检请求", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("不允许的来源", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("非跨域请求", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop(), time.Second))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.ErrCodeInternal, decode(t, w).Code)
}
