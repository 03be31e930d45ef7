package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/leafside/internal/domain/order"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// Order和OrderItem是聚合关系，必须一起保存；查询时Preload明细避免N+1
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 订单和明细一起写入，下单流程中应在事务内调用
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	if err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	if err := getDB(ctx, r.db).Preload("Items").Where("order_no = ?", orderNo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 只更新status和updated_at
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":     int(o.Status),
			"updated_at": o.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Delete 先删明细再删订单
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		result := tx.Delete(&OrderModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return r.List(ctx, order.ListParams{Page: page, PageSize: pageSize, UserID: userID})
}

// List 按下单时间倒序，Status/UserID为零值时不过滤
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{})
	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Status != 0 {
		query = query.Where("status = ?", int(params.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计订单数量失败")
	}

	var models []OrderModel
	err := query.Preload("Items").
		Order("created_at DESC").
		Scopes(paginate(params.Page, params.PageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func toOrderModel(o *order.Order) *OrderModel {
	m := &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Total:           o.Total,
		Status:          int(o.Status),
		ShippingAddress: o.ShippingAddress,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		Notes:           o.Notes,
		Items:           make([]OrderItemModel, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:         it.ID,
			OrderID:    it.OrderID,
			BookID:     it.BookID,
			BookTitle:  it.BookTitle,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
	}
	return m
}

func toOrderEntity(m *OrderModel) *order.Order {
	o := &order.Order{
		ID:      m.ID,
		OrderNo: m.OrderNo,
		UserID:  m.UserID,
		Total:   m.Total,
		Status:  order.Status(m.Status),
		ShippingInfo: order.ShippingInfo{
			ShippingAddress: m.ShippingAddress,
			CustomerName:    m.CustomerName,
			CustomerEmail:   m.CustomerEmail,
			CustomerPhone:   m.CustomerPhone,
			Notes:           m.Notes,
		},
		Items:     make([]order.Item, len(m.Items)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for i, it := range m.Items {
		o.Items[i] = order.Item{
			ID:         it.ID,
			OrderID:    it.OrderID,
			BookID:     it.BookID,
			BookTitle:  it.BookTitle,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		}
	}
	return o
}
