// Package event 领域事件
//
// 路由键即事件类型，发布到topic交换机；消费方按 order.* / review.* 绑定。
package event

import "time"

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	ReviewSubmitted    = "review.submitted"
	UserRegistered     = "user.registered"
)

// RoutingKeys notifier订阅的全部事件
var RoutingKeys = []string{"order.*", "review.*", "user.*"}

type OrderCreatedPayload struct {
	OrderID   uint      `json:"order_id"`
	OrderNo   string    `json:"order_no"`
	UserID    uint      `json:"user_id"`
	Total     string    `json:"total"`
	ItemCount int       `json:"item_count"`
	Source    string    `json:"source"` // cart | direct
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatusChangedPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  uint   `json:"user_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type ReviewSubmittedPayload struct {
	ReviewID uint `json:"review_id"`
	BookID   uint `json:"book_id"`
	UserID   uint `json:"user_id"`
	Rating   int  `json:"rating"`
}

type UserRegisteredPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}
