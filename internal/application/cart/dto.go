package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemView 购物车条目，带图书当前信息
type ItemView struct {
	BookID        uint             `json:"book_id"`
	Title         string           `json:"title"`
	Author        string           `json:"author"`
	CoverURL      string           `json:"cover_url"`
	Quantity      int              `json:"quantity"`
	PriceSnapshot *decimal.Decimal `json:"price_snapshot"`
	CurrentPrice  *decimal.Decimal `json:"current_price"` // 图书已删除时为null
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	Available     bool             `json:"available"`
}

// CartView 购物车
type CartView struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	Items         []*ItemView     `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CartSummary 管理后台列表项
type CartSummary struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	ItemCount     int       `json:"item_count"`
	TotalQuantity int       `json:"total_quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}
