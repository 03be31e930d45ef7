//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	appbook "github.com/xiebiao/leafside/internal/application/book"
	appcart "github.com/xiebiao/leafside/internal/application/cart"
	appfavorite "github.com/xiebiao/leafside/internal/application/favorite"
	apporder "github.com/xiebiao/leafside/internal/application/order"
	appreview "github.com/xiebiao/leafside/internal/application/review"
	appstats "github.com/xiebiao/leafside/internal/application/stats"
	appuser "github.com/xiebiao/leafside/internal/application/user"
	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/cart"
	"github.com/xiebiao/leafside/internal/domain/favorite"
	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/review"
	"github.com/xiebiao/leafside/internal/domain/stats"
	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/internal/infrastructure/config"
	"github.com/xiebiao/leafside/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/leafside/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/leafside/internal/interface/http/handler"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、JWT、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideJWTManager,
	provideSessionStore,
	provideBookCache,
	provideEventPublisher,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.RevocationChecker), new(*redis.SessionStore)),
)

var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewReviewRepository,
	mysql.NewFavoriteRepository,
	mysql.NewStatsRepository,
	mysql.NewTxManager,
	wire.Bind(new(application.TxManager), new(*mysql.TxManager)),
)

var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	cart.NewService,
	order.NewService,
	review.NewService,
	favorite.NewService,
	stats.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideRefreshUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	provideManageUsersUseCase,
	appuser.NewBootstrapAdminUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewManageBookUseCase,
	appcart.NewCartUseCase,
	appcart.NewAdminCartUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewMyOrdersUseCase,
	apporder.NewAdminOrdersUseCase,
	appreview.NewReviewUseCase,
	appreview.NewModerationUseCase,
	appfavorite.NewFavoriteUseCase,
	appstats.NewStatsUseCase,
)

var httpSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	provideRateLimiter,
	handler.NewAccountHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewFavoriteHandler,
	handler.NewAdminHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用，cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		httpSet,
		newApp,
	)
	return nil, nil, nil
}
