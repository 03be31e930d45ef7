// Package application 应用层
//
// 用例负责流程编排：开启事务、调用领域服务、记录指标和span、发布领域事件，
// 业务规则留在domain层。各子包按聚合划分，本包放跨用例共享的端口定义。
package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/pkg/logger"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TxManager 事务端口，由mysql.TxManager实现
// fn内通过ctx传递事务，所有Repository操作在同一事务中
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布端口
// 事件在事务提交后发布，发布失败不影响业务结果
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// NopPublisher 未启用消息队列时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// NormalizePage 页码从1开始，每页默认20条，最多100条
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Page 分页结果
type Page[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPage pageSize必须已经过NormalizePage
func NewPage[T any](list []T, total int64, page, pageSize int) *Page[T] {
	if list == nil {
		list = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Page[T]{List: list, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}

// PublishEvent 发布事件，失败只记录日志
func PublishEvent(ctx context.Context, pub EventPublisher, routingKey string, payload interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, routingKey, payload); err != nil {
		logger.FromContext(ctx).Warn("发布领域事件失败", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
