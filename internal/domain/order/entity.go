package order

import (
	"strings"
	"time"
)

// Status 订单状态
// 正常流转：Pending → Processing → Shipped → Delivered；未到终态前都可以取消
type Status int

const (
	StatusPending    Status = 1 // 待处理
	StatusProcessing Status = 2 // 处理中
	StatusShipped    Status = 3 // 已发货
	StatusDelivered  Status = 4 // 已送达
	StatusCancelled  Status = 5 // 已取消
)

// AllStatuses 按流转顺序排列
var AllStatuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

var statusNames = map[Status]string{
	StatusPending:    "Pending",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Cancelled",
}

// String 对外接口使用的状态名
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Label 中文描述（日志、通知）
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "待处理"
	case StatusProcessing:
		return "处理中"
	case StatusShipped:
		return "已发货"
	case StatusDelivered:
		return "已送达"
	case StatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// IsTerminal 已送达和已取消是终态
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus 大小写不敏感地解析状态名
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, ErrInvalidStatus
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ShippingInfo 收货信息
type ShippingInfo struct {
	ShippingAddress string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Notes           string
}

// Order 订单实体（聚合根）
// 创建后只有状态和时间戳会变化，Total冗余存储
type Order struct {
	ID      uint
	OrderNo string
	UserID  uint
	Total   int64 // 分
	Status  Status
	ShippingInfo
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item 订单明细，价格和书名都是下单时的快照
type Item struct {
	ID         uint
	OrderID    uint
	BookID     uint
	BookTitle  string
	Quantity   int
	UnitPrice  int64
	TotalPrice int64
}

// NewItem 创建明细并计算小计
func NewItem(bookID uint, title string, quantity int, unitPrice int64) Item {
	return Item{
		BookID:     bookID,
		BookTitle:  title,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * int64(quantity),
	}
}

// NewOrder 创建新订单，初始状态为Pending，Total由明细汇总
func NewOrder(orderNo string, userID uint, items []Item, shipping ShippingInfo) *Order {
	now := time.Now()
	o := &Order{
		OrderNo:      orderNo,
		UserID:       userID,
		Status:       StatusPending,
		ShippingInfo: shipping,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	o.Total = o.CalculateTotal()
	return o
}

// CanTransitionTo 状态机校验
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
func (o *Order) TransitionTo(target Status) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// ConfirmDelivery 买家确认收货：只有本人可以操作，只允许从Pending或Shipped进入Delivered
func (o *Order) ConfirmDelivery(userID uint) error {
	if !o.IsOwnedBy(userID) {
		return ErrNotOrderOwner
	}
	if o.Status != StatusPending && o.Status != StatusShipped {
		return ErrInvalidStatusTransition
	}
	o.Status = StatusDelivered
	o.UpdatedAt = time.Now()
	return nil
}

// CalculateTotal Σ(单价 × 数量)
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// TotalQuantity 订单中图书总册数
func (o *Order) TotalQuantity() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
