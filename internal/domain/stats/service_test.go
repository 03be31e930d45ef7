package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/leafside/internal/domain/stats"
	"github.com/xiebiao/leafside/internal/domain/stats/mocks"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 31, 15, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	repo.EXPECT().Overview(ctx).Return(&stats.Overview{TotalUsers: 10, TotalRevenue: 5000}, nil)
	repo.EXPECT().Period(ctx, today, now).Return(&stats.PeriodStats{Orders: 1}, nil)
	repo.EXPECT().Period(ctx, now.AddDate(0, 0, -7), now).Return(&stats.PeriodStats{Orders: 4}, nil)
	repo.EXPECT().Period(ctx, now.AddDate(0, 0, -30), now).Return(&stats.PeriodStats{Orders: 9}, nil)
	repo.EXPECT().OrdersByStatus(ctx).Return([]stats.StatusCount{{Status: 1, Count: 2}}, nil)
	repo.EXPECT().BookStats(ctx).Return(&stats.BookStats{Total: 3, Available: 2, Unavailable: 1}, nil)
	repo.EXPECT().CartStats(ctx).Return(&stats.CartStats{ActiveCarts: 1, TotalItems: 4}, nil)
	repo.EXPECT().TopBooks(ctx, 10).Return([]stats.TopBook{{BookID: 1, TotalSold: 7}}, nil)

	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().DailyOrders(ctx, from).Return([]stats.DailyStat{
		{Date: "2024-03-02", Orders: 2, Revenue: 3000},
		{Date: "2024-03-31", Orders: 1, Revenue: 2000},
	}, nil)
	repo.EXPECT().DailyUsers(ctx, from).Return(map[string]int64{"2024-03-15": 3}, nil)

	d, err := stats.NewServiceAt(repo, func() time.Time { return now }).Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(10), d.Overview.TotalUsers)
	assert.Equal(t, int64(1), d.Today.Orders)
	assert.Equal(t, int64(4), d.ThisWeek.Orders)
	assert.Equal(t, int64(9), d.ThisMonth.Orders)
	assert.Equal(t, int64(1), d.Books.Unavailable)

	require.Len(t, d.Daily, 30)
	assert.Equal(t, "2024-03-02", d.Daily[0].Date)
	assert.Equal(t, int64(2), d.Daily[0].Orders)
	assert.Equal(t, "2024-03-31", d.Daily[29].Date)
	assert.Equal(t, int64(2000), d.Daily[29].Revenue)
	assert.Equal(t, int64(3), d.Daily[13].NewUsers)
	assert.Equal(t, int64(0), d.Daily[5].Orders)
}

func TestUserSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().UserSummary(ctx, now.AddDate(0, 0, -7)).Return(&stats.UserSummary{TotalUsers: 5, AdminUsers: 1, RegularUsers: 4}, nil)

	s, err := stats.NewServiceAt(repo, func() time.Time { return now }).UserSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.RegularUsers)
}
