package stats

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/stats"
	"github.com/xiebiao/leafside/pkg/money"
	"github.com/xiebiao/leafside/pkg/tracing"
)

type UserStatsResponse struct {
	TotalOrders         int64 `json:"total_orders"`
	TotalBooksPurchased int64 `json:"total_books_purchased"`
	ItemsInCart         int64 `json:"items_in_cart"`
	FavoritesCount      int64 `json:"favorites_count"`
}

type UserSummaryResponse struct {
	TotalUsers   int64 `json:"total_users"`
	AdminUsers   int64 `json:"admin_users"`
	RegularUsers int64 `json:"regular_users"`
	RecentUsers  int64 `json:"recent_users"`
}

type OverviewResponse struct {
	TotalUsers   int64           `json:"total_users"`
	TotalBooks   int64           `json:"total_books"`
	TotalOrders  int64           `json:"total_orders"`
	TotalCarts   int64           `json:"total_carts"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type PeriodResponse struct {
	NewUsers int64           `json:"new_users"`
	Orders   int64           `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type BookStatsResponse struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Unavailable int64 `json:"unavailable"`
}

type CartStatsResponse struct {
	ActiveCarts int64 `json:"active_carts"`
	TotalItems  int64 `json:"total_items"`
}

type TopBookResponse struct {
	BookID       uint            `json:"book_id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type DailyResponse struct {
	Date     string          `json:"date"`
	Orders   int64           `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
	NewUsers int64           `json:"new_users"`
}

// DashboardResponse 管理后台仪表盘，收入只统计已送达订单
type DashboardResponse struct {
	Overview       OverviewResponse       `json:"overview"`
	Today          PeriodResponse         `json:"today"`
	ThisWeek       PeriodResponse         `json:"this_week"`
	ThisMonth      PeriodResponse         `json:"this_month"`
	OrdersByStatus []*StatusCountResponse `json:"orders_by_status"`
	Books          BookStatsResponse      `json:"books"`
	Carts          CartStatsResponse      `json:"carts"`
	TopBooks       []*TopBookResponse     `json:"top_books"`
	Daily          []*DailyResponse       `json:"daily"`
	GeneratedAt    time.Time              `json:"generated_at"`
}

// StatsUseCase 个人统计和管理后台统计
type StatsUseCase struct {
	statsService stats.Service
}

func NewStatsUseCase(statsService stats.Service) *StatsUseCase {
	return &StatsUseCase{statsService: statsService}
}

func (uc *StatsUseCase) UserStats(ctx context.Context, userID uint) (*UserStatsResponse, error) {
	s, err := uc.statsService.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserStatsResponse{
		TotalOrders:         s.TotalOrders,
		TotalBooksPurchased: s.TotalBooksPurchased,
		ItemsInCart:         s.ItemsInCart,
		FavoritesCount:      s.FavoritesCount,
	}, nil
}

func (uc *StatsUseCase) UserSummary(ctx context.Context) (*UserSummaryResponse, error) {
	s, err := uc.statsService.UserSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &UserSummaryResponse{
		TotalUsers:   s.TotalUsers,
		AdminUsers:   s.AdminUsers,
		RegularUsers: s.RegularUsers,
		RecentUsers:  s.RecentUsers,
	}, nil
}

func (uc *StatsUseCase) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "StatsUseCase.Dashboard")
	defer span.End()

	d, err := uc.statsService.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Overview: OverviewResponse{
			TotalUsers:   d.Overview.TotalUsers,
			TotalBooks:   d.Overview.TotalBooks,
			TotalOrders:  d.Overview.TotalOrders,
			TotalCarts:   d.Overview.TotalCarts,
			TotalRevenue: money.ToDecimal(d.Overview.TotalRevenue),
		},
		Today:     toPeriod(d.Today),
		ThisWeek:  toPeriod(d.ThisWeek),
		ThisMonth: toPeriod(d.ThisMonth),
		OrdersByStatus: lo.Map(d.OrdersByStatus, func(s stats.StatusCount, _ int) *StatusCountResponse {
			return &StatusCountResponse{Status: order.Status(s.Status).String(), Count: s.Count}
		}),
		Books: BookStatsResponse(d.Books),
		Carts: CartStatsResponse(d.Carts),
		TopBooks: lo.Map(d.TopBooks, func(b stats.TopBook, _ int) *TopBookResponse {
			return &TopBookResponse{
				BookID:       b.BookID,
				Title:        b.Title,
				Author:       b.Author,
				TotalSold:    b.TotalSold,
				TotalRevenue: money.ToDecimal(b.TotalRevenue),
			}
		}),
		Daily: lo.Map(d.Daily, func(s stats.DailyStat, _ int) *DailyResponse {
			return &DailyResponse{
				Date:     s.Date,
				Orders:   s.Orders,
				Revenue:  money.ToDecimal(s.Revenue),
				NewUsers: s.NewUsers,
			}
		}),
		GeneratedAt: d.GeneratedAt,
	}, nil
}

func toPeriod(p stats.PeriodStats) PeriodResponse {
	return PeriodResponse{NewUsers: p.NewUsers, Orders: p.Orders, Revenue: money.ToDecimal(p.Revenue)}
}
