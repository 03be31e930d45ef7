package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
	"github.com/xiebiao/leafside/pkg/response"
)

// Context中的key
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRoles  = "roles"
	ContextClaims = "claims"
)

// RevocationChecker Token黑名单，由redis.SessionStore实现
// 注销的jti，以及角色变更、删除用户之前签发的Token都视为已吊销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, claims *jwt.Claims) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Token
// 2. 验证签名、过期时间和Token类型
// 3. 检查黑名单（注销后的Token、角色变更前签发的Token）
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager  *jwt.Manager
	revocations RevocationChecker
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, revocations RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, revocations: revocations}
}

// RequireAuth 要求登录
//
//	authorized := r.Group("/api")
//	authorized.Use(auth.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			response.Abort(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireRole 必须放在RequireAuth之后，拥有任一角色即可
//
//	admin := r.Group("/api/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}
		response.Abort(c, apperrors.ErrForbidden)
	}
}

// OptionalAuth 有合法Token时注入用户信息，没有或无效时作为匿名用户继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := m.authenticate(c); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*jwt.Claims, error) {
	// Authorization: Bearer <token>
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrUnauthorized
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误")
	}

	claims, err := m.jwtManager.ParseAccessToken(parts[1])
	if err != nil {
		return nil, err
	}

	revoked, err := m.revocations.IsRevoked(c.Request.Context(), claims)
	if err != nil {
		return nil, apperrors.ErrRedisError.WithErr(err)
	}
	if revoked {
		return nil, apperrors.New(apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRoles, claims.Roles)
	c.Set(ContextClaims, claims)
}

// GetUserID 未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetClaims 未登录返回nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// HasRole 当前用户是否拥有角色
func HasRole(c *gin.Context, role string) bool {
	claims := GetClaims(c)
	return claims != nil && claims.HasRole(role)
}
