package order

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/pkg/logger"
	"github.com/xiebiao/leafside/pkg/metrics"
)

// MyOrdersUseCase 用户查看自己的订单、确认收货
type MyOrdersUseCase struct {
	orderService order.Service
	publisher    application.EventPublisher
}

func NewMyOrdersUseCase(orderService order.Service, publisher application.EventPublisher) *MyOrdersUseCase {
	return &MyOrdersUseCase{orderService: orderService, publisher: publisher}
}

func (uc *MyOrdersUseCase) List(ctx context.Context, userID uint, page, pageSize int) (*application.Page[*OrderResponse], error) {
	page, pageSize = application.NormalizePage(page, pageSize)

	orders, total, err := uc.orderService.ListForUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return application.NewPage(lo.Map(orders, toOrderResponse), total, page, pageSize), nil
}

// Get 不是本人的订单返回Forbidden
func (uc *MyOrdersUseCase) Get(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	o, err := uc.orderService.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// ConfirmDelivery 只允许从Pending或Shipped确认收货
func (uc *MyOrdersUseCase) ConfirmDelivery(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	o, from, err := uc.orderService.ConfirmDelivery(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	statusChanged(ctx, uc.publisher, o, from)
	return ToOrderResponse(o), nil
}

// AdminOrdersUseCase 管理后台订单管理
type AdminOrdersUseCase struct {
	orderService order.Service
	publisher    application.EventPublisher
}

func NewAdminOrdersUseCase(orderService order.Service, publisher application.EventPublisher) *AdminOrdersUseCase {
	return &AdminOrdersUseCase{orderService: orderService, publisher: publisher}
}

// ListOrdersRequest Status为空表示全部
type ListOrdersRequest struct {
	Page     int
	PageSize int
	Status   string
	UserID   uint
}

func (uc *AdminOrdersUseCase) List(ctx context.Context, req ListOrdersRequest) (*application.Page[*OrderResponse], error) {
	page, pageSize := application.NormalizePage(req.Page, req.PageSize)

	params := order.ListParams{Page: page, PageSize: pageSize, UserID: req.UserID}
	if req.Status != "" {
		s, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		params.Status = s
	}

	orders, total, err := uc.orderService.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return application.NewPage(lo.Map(orders, toOrderResponse), total, page, pageSize), nil
}

func (uc *AdminOrdersUseCase) Get(ctx context.Context, orderID uint) (*OrderResponse, error) {
	o, err := uc.orderService.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// UpdateStatus status为状态名（Pending、Processing、Shipped、Delivered、Cancelled）
func (uc *AdminOrdersUseCase) UpdateStatus(ctx context.Context, orderID uint, status string) (*OrderResponse, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, from, err := uc.orderService.UpdateStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}
	statusChanged(ctx, uc.publisher, o, from)
	return ToOrderResponse(o), nil
}

func (uc *AdminOrdersUseCase) Delete(ctx context.Context, orderID uint) error {
	if err := uc.orderService.Delete(ctx, orderID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("订单已删除", zap.Uint("order_id", orderID))
	return nil
}

func statusChanged(ctx context.Context, pub application.EventPublisher, o *order.Order, from order.Status) {
	metrics.OrderStatusChangesTotal.WithLabelValues(from.String(), o.Status.String()).Inc()

	logger.FromContext(ctx).Info("订单状态变更",
		zap.String("order_no", o.OrderNo),
		zap.String("from", from.Label()),
		zap.String("to", o.Status.Label()),
	)

	application.PublishEvent(ctx, pub, event.OrderStatusChanged, event.OrderStatusChangedPayload{
		OrderID: o.ID,
		OrderNo: o.OrderNo,
		UserID:  o.UserID,
		From:    from.String(),
		To:      o.Status.String(),
	})
}
