package cart

import (
	"time"
)

// Cart 购物车（每个用户一个，首次访问时创建）
type Cart struct {
	ID        uint
	UserID    uint
	Items     []*Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item 购物车条目
// PriceSnapshot 为加入购物车时的价格（分），之后图书改价不影响它
type Item struct {
	ID            uint
	CartID        uint
	BookID        uint
	Quantity      int
	PriceSnapshot *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	now := time.Now()
	return &Cart{UserID: userID, Items: []*Item{}, CreatedAt: now, UpdatedAt: now}
}

// NewItem 新条目，按当前价格生成快照
func NewItem(cartID, bookID uint, quantity int, price int64) *Item {
	now := time.Now()
	snapshot := price
	return &Item{
		CartID:        cartID,
		BookID:        bookID,
		Quantity:      quantity,
		PriceSnapshot: &snapshot,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetQuantity 只修改数量，保留已有价格快照；旧数据没有快照时用当前价格补上
func (i *Item) SetQuantity(quantity int, currentPrice int64) {
	i.Quantity = quantity
	if i.PriceSnapshot == nil {
		p := currentPrice
		i.PriceSnapshot = &p
	}
	i.UpdatedAt = time.Now()
}

// UnitPrice 快照优先，其次是图书当前价格
func (i *Item) UnitPrice(currentPrice *int64) int64 {
	if i.PriceSnapshot != nil {
		return *i.PriceSnapshot
	}
	if currentPrice != nil {
		return *currentPrice
	}
	return 0
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem 按图书查找条目
func (c *Cart) FindItem(bookID uint) *Item {
	for _, it := range c.Items {
		if it.BookID == bookID {
			return it
		}
	}
	return nil
}

// TotalQuantity 所有条目数量之和
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// BookIDs 购物车中的全部图书ID
func (c *Cart) BookIDs() []uint {
	ids := make([]uint, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.BookID)
	}
	return ids
}
