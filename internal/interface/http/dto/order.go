package dto

import (
	"github.com/shopspring/decimal"

	apporder "github.com/xiebiao/leafside/internal/application/order"
)

// ShippingInfo 收货信息，收货人、邮箱、电话为空时取用户资料
type ShippingInfo struct {
	ShippingAddress string `json:"shipping_address" binding:"max=500" example:"北京市海淀区xx路1号"`
	CustomerName    string `json:"customer_name" binding:"max=100" example:"张三"`
	CustomerEmail   string `json:"customer_email" binding:"omitempty,email,max=255"`
	CustomerPhone   string `json:"customer_phone" binding:"max=20"`
	Notes           string `json:"notes" binding:"max=1000"`
}

func (s ShippingInfo) toApp() apporder.ShippingRequest {
	return apporder.ShippingRequest{
		ShippingAddress: s.ShippingAddress,
		CustomerName:    s.CustomerName,
		CustomerEmail:   s.CustomerEmail,
		CustomerPhone:   s.CustomerPhone,
		Notes:           s.Notes,
	}
}

// CreateOrderRequest 直接下单
// expected_total为客户端计算的总金额，与服务端结果相差超过0.01时拒绝
type CreateOrderRequest struct {
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ExpectedTotal decimal.Decimal          `json:"expected_total" swaggertype:"number" example:"118.00"`
	ShippingInfo
}

type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

func (r *CreateOrderRequest) ToApp(userID uint) apporder.CreateOrderRequest {
	items := make([]apporder.CreateOrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, apporder.CreateOrderItem{BookID: it.BookID, Quantity: it.Quantity})
	}
	return apporder.CreateOrderRequest{
		UserID:        userID,
		Items:         items,
		ExpectedTotal: r.ExpectedTotal,
		Shipping:      r.ShippingInfo.toApp(),
	}
}

// CheckoutRequest 购物车下单
type CheckoutRequest struct {
	ShippingInfo
}

func (r *CheckoutRequest) ToApp(userID uint) apporder.CheckoutRequest {
	return apporder.CheckoutRequest{UserID: userID, Shipping: r.ShippingInfo.toApp()}
}

// UpdateOrderStatusRequest 状态名大小写不敏感
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Shipped"`
}

// ListOrdersQuery 管理后台订单查询
type ListOrdersQuery struct {
	PageQuery
	Status string `form:"status" example:"Pending"`
	UserID uint   `form:"user_id"`
}
