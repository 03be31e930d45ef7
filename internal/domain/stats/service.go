package stats

import (
	"context"
	"time"
)

const (
	topBooksLimit = 10
	dailyDays     = 30
	dateLayout    = "2006-01-02"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 统计服务
type Service interface {
	UserStats(ctx context.Context, userID uint) (*UserStats, error)
	UserSummary(ctx context.Context) (*UserSummary, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建统计服务
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) UserStats(ctx context.Context, userID uint) (*UserStats, error) {
	return s.repo.UserStats(ctx, userID)
}

func (s *service) UserSummary(ctx context.Context) (*UserSummary, error) {
	return s.repo.UserSummary(ctx, s.now().AddDate(0, 0, -7))
}

// Dashboard 汇总各项统计；今天从0点算起，本周和本月分别是最近7天和30天
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	d := &Dashboard{GeneratedAt: now}

	overview, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, err
	}
	d.Overview = *overview

	periods := []struct {
		from time.Time
		dst  *PeriodStats
	}{
		{today, &d.Today},
		{now.AddDate(0, 0, -7), &d.ThisWeek},
		{now.AddDate(0, 0, -30), &d.ThisMonth},
	}
	for _, p := range periods {
		ps, err := s.repo.Period(ctx, p.from, now)
		if err != nil {
			return nil, err
		}
		*p.dst = *ps
	}

	if d.OrdersByStatus, err = s.repo.OrdersByStatus(ctx); err != nil {
		return nil, err
	}

	books, err := s.repo.BookStats(ctx)
	if err != nil {
		return nil, err
	}
	d.Books = *books

	carts, err := s.repo.CartStats(ctx)
	if err != nil {
		return nil, err
	}
	d.Carts = *carts

	if d.TopBooks, err = s.repo.TopBooks(ctx, topBooksLimit); err != nil {
		return nil, err
	}

	from := today.AddDate(0, 0, -(dailyDays - 1))
	if d.Daily, err = s.daily(ctx, from); err != nil {
		return nil, err
	}
	return d, nil
}

// daily 补齐没有数据的日期，保证返回连续30天
func (s *service) daily(ctx context.Context, from time.Time) ([]DailyStat, error) {
	orders, err := s.repo.DailyOrders(ctx, from)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.DailyUsers(ctx, from)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]DailyStat, len(orders))
	for _, o := range orders {
		byDate[o.Date] = o
	}

	series := make([]DailyStat, 0, dailyDays)
	for i := 0; i < dailyDays; i++ {
		date := from.AddDate(0, 0, i).Format(dateLayout)
		stat := byDate[date]
		stat.Date = date
		stat.NewUsers = users[date]
		series = append(series, stat)
	}
	return series, nil
}
