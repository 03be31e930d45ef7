package mysql

import (
	"time"

	"gorm.io/gorm"
)

// GORM数据模型，带tag，只在infrastructure层使用
// domain层的实体不依赖GORM，Repository负责两者转换

// UserModel 用户表，roles以逗号分隔存储
type UserModel struct {
	ID          uint           `gorm:"primaryKey"`
	Email       string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password    string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	FirstName   string         `gorm:"size:50;comment:名"`
	LastName    string         `gorm:"size:50;comment:姓"`
	PhoneNumber string         `gorm:"size:30;comment:手机号"`
	CountryCode string         `gorm:"size:8;comment:国家区号"`
	Gender      string         `gorm:"size:16;comment:性别"`
	Roles       string         `gorm:"size:100;not null;default:User;comment:角色(逗号分隔)"`
	CreatedAt   time.Time      `gorm:"index;comment:注册时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// BookModel 图书表
// ISBN为空时存NULL，唯一索引允许多个NULL
type BookModel struct {
	ID            uint           `gorm:"primaryKey"`
	ISBN          *string        `gorm:"uniqueIndex;size:20;comment:ISBN号"`
	Title         string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author        string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Publisher     string         `gorm:"size:100;comment:出版社"`
	Description   string         `gorm:"type:text;comment:图书描述"`
	Genre         string         `gorm:"index;size:50;comment:分类"`
	Language      string         `gorm:"size:30;comment:语言"`
	PageCount     int            `gorm:"default:0;comment:页数"`
	PublishedYear int            `gorm:"comment:出版年份"`
	Price         int64          `gorm:"index:idx_list;not null;comment:价格(分)"`
	CoverURL      string         `gorm:"size:500;comment:封面图片URL"`
	IsAvailable   bool           `gorm:"index;not null;default:true;comment:是否在售"`
	CreatedAt     time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// CartModel 购物车表，每个用户一行
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel 购物车条目，(cart_id, book_id)唯一
type CartItemModel struct {
	ID            uint   `gorm:"primaryKey"`
	CartID        uint   `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID        uint   `gorm:"uniqueIndex:idx_cart_book;index;not null;comment:图书ID"`
	Quantity      int    `gorm:"not null;comment:数量"`
	PriceSnapshot *int64 `gorm:"comment:加入时的单价(分)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel 订单表，与OrderItemModel一对多
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Total           int64            `gorm:"not null;comment:订单总金额(分)"`
	Status          int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1待处理2处理中3已发货4已送达5已取消)"`
	ShippingAddress string           `gorm:"size:500;comment:收货地址"`
	CustomerName    string           `gorm:"size:100;comment:收货人"`
	CustomerEmail   string           `gorm:"size:100;comment:联系邮箱"`
	CustomerPhone   string           `gorm:"size:30;comment:联系电话"`
	Notes           string           `gorm:"size:1000;comment:备注"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细，书名和单价是下单时的快照
type OrderItemModel struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    uint   `gorm:"index;not null;comment:订单ID"`
	BookID     uint   `gorm:"index;not null;comment:图书ID"`
	BookTitle  string `gorm:"size:200;comment:下单时书名"`
	Quantity   int    `gorm:"not null;comment:购买数量"`
	UnitPrice  int64  `gorm:"not null;comment:下单时单价(分)"`
	TotalPrice int64  `gorm:"not null;comment:小计(分)"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// ReviewModel 评价表，(user_id, book_id)唯一
type ReviewModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"uniqueIndex:idx_review_user_book;not null;comment:用户ID"`
	BookID     uint   `gorm:"uniqueIndex:idx_review_user_book;index;not null;comment:图书ID"`
	Rating     int    `gorm:"type:tinyint;not null;comment:评分1-5"`
	Comment    string `gorm:"size:2000;comment:评价内容"`
	IsApproved bool   `gorm:"index;not null;default:false;comment:是否审核通过"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// FavoriteModel 收藏表，(user_id, book_id)唯一
type FavoriteModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_favorite_user_book;not null;comment:用户ID"`
	BookID    uint `gorm:"uniqueIndex:idx_favorite_user_book;index;not null;comment:图书ID"`
	CreatedAt time.Time
}

func (FavoriteModel) TableName() string {
	return "favorites"
}
