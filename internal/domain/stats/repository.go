package stats

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// Repository 统计查询（只读），由SQL聚合实现
type Repository interface {
	UserStats(ctx context.Context, userID uint) (*UserStats, error)
	UserSummary(ctx context.Context, recentSince time.Time) (*UserSummary, error)
	Overview(ctx context.Context) (*Overview, error)
	Period(ctx context.Context, from, to time.Time) (*PeriodStats, error)
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)
	BookStats(ctx context.Context) (*BookStats, error)
	CartStats(ctx context.Context) (*CartStats, error)
	TopBooks(ctx context.Context, limit int) ([]TopBook, error)

	// DailyOrders 按天汇总订单数和已送达收入，没有订单的日期不返回
	DailyOrders(ctx context.Context, from time.Time) ([]DailyStat, error)

	// DailyUsers 按天统计新注册用户，key为2006-01-02
	DailyUsers(ctx context.Context, from time.Time) (map[string]int64, error)
}
