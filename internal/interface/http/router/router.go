// Package router 组装gin引擎：全局中间件、路由分组和权限
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/internal/infrastructure/config"
	"github.com/xiebiao/leafside/internal/interface/http/handler"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/metrics"
)

// slowRequestThreshold 超过这个耗时的请求记Warn日志
const slowRequestThreshold = time.Second

// Handlers 全部HTTP处理器
type Handlers struct {
	Account  *handler.AccountHandler
	Book     *handler.BookHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Favorite *handler.FavoriteHandler
	Admin    *handler.AdminHandler
	Health   *handler.HealthHandler
}

// New 创建gin引擎
// limiter为nil时不限流
func New(cfg *config.Config, log *zap.Logger, h *Handlers, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(log, slowRequestThreshold),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)
	if limiter != nil {
		r.Use(limiter.Handler())
	}

	r.GET("/ping", h.Health.Ping)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)

	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireRole(user.RoleAdmin)

	account := api.Group("/account")
	{
		account.POST("/register", h.Account.Register)
		account.POST("/login", h.Account.Login)
		account.POST("/refresh", h.Account.Refresh)

		account.POST("/logout", requireAuth, h.Account.Logout)
		account.GET("/profile", requireAuth, h.Account.GetProfile)
		account.PUT("/profile", requireAuth, h.Account.UpdateProfile)
		account.GET("/stats", requireAuth, h.Account.Stats)
	}

	books := api.Group("/books")
	{
		books.GET("", h.Book.List)
		books.GET("/:id", h.Book.Get)
		books.POST("", requireAuth, requireAdmin, h.Book.Create)
		books.PUT("/:id", requireAuth, requireAdmin, h.Book.Update)
		books.DELETE("/:id", requireAuth, requireAdmin, h.Book.Delete)
	}

	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.DELETE("/items/:bookId", h.Cart.RemoveItem)
	}

	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", h.Order.Create)
		orders.POST("/checkout", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/confirm-delivery", h.Order.ConfirmDelivery)
	}

	reviews := api.Group("/reviews")
	{
		// 匿名可读，管理员登录后可查看待审核
		reviews.GET("/book/:bookId", auth.OptionalAuth(), h.Review.ListByBook)
		reviews.GET("/book/:bookId/rating", auth.OptionalAuth(), h.Review.Rating)
		reviews.GET("/book/:bookId/my", requireAuth, h.Review.Mine)

		reviews.POST("", requireAuth, h.Review.Create)
		reviews.PUT("/:id", requireAuth, h.Review.Update)
		reviews.DELETE("/:id", requireAuth, h.Review.Delete)

		reviews.GET("/pending", requireAuth, requireAdmin, h.Review.ListPending)
		reviews.POST("/:id/approve", requireAuth, requireAdmin, h.Review.Approve)
		reviews.POST("/:id/reject", requireAuth, requireAdmin, h.Review.Reject)
	}

	favorites := api.Group("/favorites", requireAuth)
	{
		favorites.GET("", h.Favorite.List)
		favorites.POST("", h.Favorite.Add)
		favorites.GET("/count", h.Favorite.Count)
		favorites.DELETE("/:bookId", h.Favorite.Remove)
		favorites.GET("/:bookId/check", h.Favorite.Check)
	}

	admin := api.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/orders", h.Admin.ListOrders)
		admin.GET("/orders/:id", h.Admin.GetOrder)
		admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
		admin.DELETE("/orders/:id", h.Admin.DeleteOrder)

		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.PUT("/users/:id/roles", h.Admin.UpdateUserRoles)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.GET("/carts", h.Admin.ListCarts)
		admin.GET("/carts/user/:userId", h.Admin.GetUserCart)

		admin.GET("/books", h.Book.List)
		admin.GET("/books/:id", h.Book.Get)
		admin.POST("/books", h.Book.Create)
		admin.PUT("/books/:id", h.Book.Update)
		admin.DELETE("/books/:id", h.Book.Delete)

		admin.GET("/stats/users", h.Admin.UserStats)
		admin.GET("/stats/dashboard", h.Admin.Dashboard)
	}

	return r
}
