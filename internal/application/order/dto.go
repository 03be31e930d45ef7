package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/pkg/money"
)

// ShippingRequest 收货信息，空字段用用户资料补齐
type ShippingRequest struct {
	ShippingAddress string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Notes           string
}

// OrderItemResponse 订单明细
type OrderItemResponse struct {
	BookID     uint            `json:"book_id"`
	BookTitle  string          `json:"book_title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse 订单详情
type OrderResponse struct {
	ID              uint                 `json:"id"`
	OrderNo         string               `json:"order_no"`
	UserID          uint                 `json:"user_id"`
	Status          string               `json:"status"`
	StatusLabel     string               `json:"status_label"`
	Total           decimal.Decimal      `json:"total"`
	ShippingAddress string               `json:"shipping_address"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone"`
	Notes           string               `json:"notes"`
	Items           []*OrderItemResponse `json:"items"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ToOrderResponse 领域实体 → DTO
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]*OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, &OrderItemResponse{
			BookID:     it.BookID,
			BookTitle:  it.BookTitle,
			Quantity:   it.Quantity,
			UnitPrice:  money.ToDecimal(it.UnitPrice),
			TotalPrice: money.ToDecimal(it.TotalPrice),
		})
	}
	return &OrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		StatusLabel:     o.Status.Label(),
		Total:           money.ToDecimal(o.Total),
		ShippingAddress: o.ShippingAddress,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponse(o *order.Order, _ int) *OrderResponse {
	return ToOrderResponse(o)
}
