package stats

import "time"

// UserStats 个人中心统计
type UserStats struct {
	TotalOrders         int64
	TotalBooksPurchased int64
	ItemsInCart         int64
	FavoritesCount      int64
}

// UserSummary 用户统计（管理后台）
type UserSummary struct {
	TotalUsers   int64
	AdminUsers   int64
	RegularUsers int64
	RecentUsers  int64 // 最近7天注册
}

// Overview 全站汇总，收入只统计已送达订单
type Overview struct {
	TotalUsers   int64
	TotalBooks   int64
	TotalOrders  int64
	TotalCarts   int64
	TotalRevenue int64
}

// PeriodStats 某个时间段的新增数据
type PeriodStats struct {
	NewUsers int64
	Orders   int64
	Revenue  int64
}

// StatusCount 每种订单状态的数量
type StatusCount struct {
	Status int
	Count  int64
}

// BookStats 图书上下架统计
type BookStats struct {
	Total       int64
	Available   int64
	Unavailable int64
}

// CartStats 有商品的购物车数量和条目总数
type CartStats struct {
	ActiveCarts int64
	TotalItems  int64
}

// TopBook 销量排行
type TopBook struct {
	BookID       uint
	Title        string
	Author       string
	TotalSold    int64
	TotalRevenue int64
}

// DailyStat 每日趋势，Date格式为2006-01-02
type DailyStat struct {
	Date     string
	Orders   int64
	Revenue  int64
	NewUsers int64
}

// Dashboard 管理后台仪表盘
type Dashboard struct {
	Overview       Overview
	Today          PeriodStats
	ThisWeek       PeriodStats
	ThisMonth      PeriodStats
	OrdersByStatus []StatusCount
	Books          BookStats
	Carts          CartStats
	TopBooks       []TopBook
	Daily          []DailyStat
	GeneratedAt    time.Time
}
