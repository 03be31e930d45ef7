package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/stats"
	"github.com/xiebiao/leafside/internal/domain/user"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

// statsRepository 聚合统计查询，全部在数据库端完成
// 收入只统计已送达的订单
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓储
func NewStatsRepository(db *gorm.DB) stats.Repository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UserStats(ctx context.Context, userID uint) (*stats.UserStats, error) {
	db := getDB(ctx, r.db)
	s := &stats.UserStats{}

	if err := db.Model(&OrderModel{}).Where("user_id = ?", userID).Count(&s.TotalOrders).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计用户订单失败")
	}
	err := db.Model(&OrderItemModel{}).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Scan(&s.TotalBooksPurchased).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计购买数量失败")
	}
	err = db.Model(&CartItemModel{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Count(&s.ItemsInCart).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计购物车条目失败")
	}
	if err := db.Model(&FavoriteModel{}).Where("user_id = ?", userID).Count(&s.FavoritesCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计收藏数量失败")
	}
	return s, nil
}

func (r *statsRepository) UserSummary(ctx context.Context, recentSince time.Time) (*stats.UserSummary, error) {
	db := getDB(ctx, r.db)
	s := &stats.UserSummary{}

	if err := db.Model(&UserModel{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计用户数量失败")
	}
	if err := db.Model(&UserModel{}).Where("FIND_IN_SET(?, roles) > 0", user.RoleAdmin).Count(&s.AdminUsers).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计管理员数量失败")
	}
	if err := db.Model(&UserModel{}).Where("created_at >= ?", recentSince).Count(&s.RecentUsers).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计新用户失败")
	}
	s.RegularUsers = s.TotalUsers - s.AdminUsers
	return s, nil
}

func (r *statsRepository) Overview(ctx context.Context) (*stats.Overview, error) {
	db := getDB(ctx, r.db)
	o := &stats.Overview{}

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&UserModel{}, &o.TotalUsers},
		{&BookModel{}, &o.TotalBooks},
		{&OrderModel{}, &o.TotalOrders},
		{&CartModel{}, &o.TotalCarts},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, apperrors.Wrap(err, "统计总览失败")
		}
	}

	if err := r.revenue(db).Scan(&o.TotalRevenue).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计总收入失败")
	}
	return o, nil
}

func (r *statsRepository) Period(ctx context.Context, from, to time.Time) (*stats.PeriodStats, error) {
	db := getDB(ctx, r.db)
	p := &stats.PeriodStats{}

	if err := db.Model(&UserModel{}).Where("created_at >= ? AND created_at <= ?", from, to).Count(&p.NewUsers).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计新用户失败")
	}
	if err := db.Model(&OrderModel{}).Where("created_at >= ? AND created_at <= ?", from, to).Count(&p.Orders).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计订单数量失败")
	}
	if err := r.revenue(db).Where("created_at >= ? AND created_at <= ?", from, to).Scan(&p.Revenue).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计收入失败")
	}
	return p, nil
}

func (r *statsRepository) OrdersByStatus(ctx context.Context) ([]stats.StatusCount, error) {
	var rows []stats.StatusCount
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按状态统计订单失败")
	}

	// 没有订单的状态补0，按状态值排序
	byStatus := make(map[int]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	out := make([]stats.StatusCount, 0, len(order.AllStatuses))
	for _, s := range order.AllStatuses {
		out = append(out, stats.StatusCount{Status: int(s), Count: byStatus[int(s)]})
	}
	return out, nil
}

func (r *statsRepository) BookStats(ctx context.Context) (*stats.BookStats, error) {
	db := getDB(ctx, r.db)
	b := &stats.BookStats{}
	if err := db.Model(&BookModel{}).Count(&b.Total).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计图书数量失败")
	}
	if err := db.Model(&BookModel{}).Where("is_available = ?", true).Count(&b.Available).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计在售图书失败")
	}
	b.Unavailable = b.Total - b.Available
	return b, nil
}

// CartStats 有条目的购物车才算活跃
func (r *statsRepository) CartStats(ctx context.Context) (*stats.CartStats, error) {
	db := getDB(ctx, r.db)
	c := &stats.CartStats{}
	if err := db.Model(&CartItemModel{}).Distinct("cart_id").Count(&c.ActiveCarts).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计活跃购物车失败")
	}
	if err := db.Model(&CartItemModel{}).Count(&c.TotalItems).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计购物车条目失败")
	}
	return c, nil
}

// TopBooks 按销量排序；图书已删除时使用订单里的书名快照
func (r *statsRepository) TopBooks(ctx context.Context, limit int) ([]stats.TopBook, error) {
	var rows []stats.TopBook
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Select("order_items.book_id AS book_id, " +
			"COALESCE(MAX(books.title), MAX(order_items.book_title)) AS title, " +
			"COALESCE(MAX(books.author), '') AS author, " +
			"SUM(order_items.quantity) AS total_sold, " +
			"SUM(order_items.total_price) AS total_revenue").
		Joins("LEFT JOIN books ON books.id = order_items.book_id").
		Group("order_items.book_id").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计畅销图书失败")
	}
	return rows, nil
}

// DailyOrders 按天统计订单数和已送达收入，没有订单的日期不返回
func (r *statsRepository) DailyOrders(ctx context.Context, from time.Time) ([]stats.DailyStat, error) {
	var rows []stats.DailyStat
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, "+
			"COUNT(*) AS orders, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS revenue", int(order.StatusDelivered)).
		Where("created_at >= ?", from).
		Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按天统计订单失败")
	}
	return rows, nil
}

func (r *statsRepository) DailyUsers(ctx context.Context, from time.Time) (map[string]int64, error) {
	var rows []struct {
		Date  string
		Count int64
	}
	err := getDB(ctx, r.db).Model(&UserModel{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS count").
		Where("created_at >= ?", from).
		Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按天统计新用户失败")
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Date] = row.Count
	}
	return out, nil
}

func (r *statsRepository) revenue(db *gorm.DB) *gorm.DB {
	return db.Model(&OrderModel{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", int(order.StatusDelivered))
}
