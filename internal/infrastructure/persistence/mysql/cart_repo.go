package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/leafside/internal/domain/cart"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// Cart与CartItem是一个聚合，查询时Preload条目
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// LockByUserID 先锁购物车行再读条目，条目读取发生在拿到锁之后，能看到并发事务提交的清空
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := getDB(ctx, r.db)

	var model CartModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "锁定购物车失败")
	}

	if err := db.Where("cart_id = ?", model.ID).Order("id ASC").Find(&model.Items).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartEntity(&model), nil
}

// Create 并发创建时user_id唯一索引冲突，回读已存在的购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{UserID: c.UserID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
	if err := getDB(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		if !isDuplicateError(err) {
			return apperrors.Wrap(err, "创建购物车失败")
		}
		existing, findErr := r.FindByUserID(ctx, c.UserID)
		if findErr != nil {
			return findErr
		}
		*c = *existing
		return nil
	}
	c.ID = model.ID
	return nil
}

// SaveItem 按(cart_id, book_id)插入或更新数量
func (r *cartRepository) SaveItem(ctx context.Context, item *cart.Item) error {
	model := toCartItemModel(item)
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "price_snapshot", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "保存购物车条目失败")
	}
	if item.ID == 0 {
		item.ID = model.ID
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, bookID uint) (bool, error) {
	result := getDB(ctx, r.db).Where("cart_id = ? AND book_id = ?", cartID, bookID).Delete(&CartItemModel{})
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) (int64, error) {
	result := getDB(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清空购物车失败")
	}
	return result.RowsAffected, nil
}

// List 管理员查看所有购物车，最近更新的在前
func (r *cartRepository) List(ctx context.Context, page, pageSize int) ([]*cart.Cart, int64, error) {
	var total int64
	if err := getDB(ctx, r.db).Model(&CartModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计购物车数量失败")
	}

	var models []CartModel
	err := getDB(ctx, r.db).
		Preload("Items").
		Order("updated_at DESC").
		Scopes(paginate(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询购物车列表失败")
	}

	carts := make([]*cart.Cart, len(models))
	for i := range models {
		carts[i] = toCartEntity(&models[i])
	}
	return carts, total, nil
}

func toCartEntity(m *CartModel) *cart.Cart {
	c := &cart.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		Items:     make([]*cart.Item, len(m.Items)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for i, it := range m.Items {
		c.Items[i] = &cart.Item{
			ID:            it.ID,
			CartID:        it.CartID,
			BookID:        it.BookID,
			Quantity:      it.Quantity,
			PriceSnapshot: it.PriceSnapshot,
			CreatedAt:     it.CreatedAt,
			UpdatedAt:     it.UpdatedAt,
		}
	}
	return c
}

func toCartItemModel(it *cart.Item) *CartItemModel {
	return &CartItemModel{
		ID:            it.ID,
		CartID:        it.CartID,
		BookID:        it.BookID,
		Quantity:      it.Quantity,
		PriceSnapshot: it.PriceSnapshot,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
