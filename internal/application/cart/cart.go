package cart

import (
	"context"

	"github.com/samber/lo"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/cart"
	"github.com/xiebiao/leafside/pkg/money"
	"github.com/xiebiao/leafside/pkg/tracing"
)

// CartUseCase 用户购物车
type CartUseCase struct {
	cartService cart.Service
	bookRepo    book.Repository
}

func NewCartUseCase(cartService cart.Service, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{cartService: cartService, bookRepo: bookRepo}
}

// Get 首次访问时创建空购物车
func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartView, error) {
	c, err := uc.cartService.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildView(ctx, uc.bookRepo, c)
}

// AddItem 设置某本书的数量（不是累加）
func (uc *CartUseCase) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*CartView, error) {
	ctx, span := tracing.StartSpan(ctx, "CartUseCase.AddItem")
	defer span.End()

	c, err := uc.cartService.AddOrUpdateItem(ctx, userID, bookID, quantity)
	if err != nil {
		return nil, err
	}
	return buildView(ctx, uc.bookRepo, c)
}

// RemoveItem 条目不存在时返回false
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, bookID uint) (bool, error) {
	return uc.cartService.RemoveItem(ctx, userID, bookID)
}

func (uc *CartUseCase) Clear(ctx context.Context, userID uint) (bool, error) {
	return uc.cartService.Clear(ctx, userID)
}

// buildView 批量加载图书，拼装展示数据
func buildView(ctx context.Context, bookRepo book.Repository, c *cart.Cart) (*CartView, error) {
	books, err := bookRepo.FindByIDs(ctx, c.BookIDs())
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(books, func(b *book.Book) uint { return b.ID })

	v := &CartView{
		ID:            c.ID,
		UserID:        c.UserID,
		Items:         make([]*ItemView, 0, len(c.Items)),
		TotalQuantity: c.TotalQuantity(),
		UpdatedAt:     c.UpdatedAt,
	}

	var total int64
	for _, it := range c.Items {
		iv := &ItemView{BookID: it.BookID, Quantity: it.Quantity}

		var current *int64
		if b, ok := byID[it.BookID]; ok {
			current = &b.Price
			iv.Title = b.Title
			iv.Author = b.Author
			iv.CoverURL = b.CoverURL
			iv.Available = b.IsAvailable
			iv.CurrentPrice = lo.ToPtr(money.ToDecimal(b.Price))
		}
		if it.PriceSnapshot != nil {
			iv.PriceSnapshot = lo.ToPtr(money.ToDecimal(*it.PriceSnapshot))
		}

		unit := it.UnitPrice(current)
		subtotal := unit * int64(it.Quantity)
		iv.UnitPrice = money.ToDecimal(unit)
		iv.Subtotal = money.ToDecimal(subtotal)
		total += subtotal

		v.Items = append(v.Items, iv)
	}
	v.Total = money.ToDecimal(total)
	return v, nil
}

// AdminCartUseCase 管理后台查看购物车
type AdminCartUseCase struct {
	cartService cart.Service
	bookRepo    book.Repository
}

func NewAdminCartUseCase(cartService cart.Service, bookRepo book.Repository) *AdminCartUseCase {
	return &AdminCartUseCase{cartService: cartService, bookRepo: bookRepo}
}

func (uc *AdminCartUseCase) List(ctx context.Context, page, pageSize int) (*application.Page[*CartSummary], error) {
	page, pageSize = application.NormalizePage(page, pageSize)

	carts, total, err := uc.cartService.ListCarts(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	list := lo.Map(carts, func(c *cart.Cart, _ int) *CartSummary {
		return &CartSummary{
			ID:            c.ID,
			UserID:        c.UserID,
			ItemCount:     len(c.Items),
			TotalQuantity: c.TotalQuantity(),
			UpdatedAt:     c.UpdatedAt,
		}
	})
	return application.NewPage(list, total, page, pageSize), nil
}

// GetByUser 不会替用户创建购物车，没有时返回NotFound
func (uc *AdminCartUseCase) GetByUser(ctx context.Context, userID uint) (*CartView, error) {
	c, err := uc.cartService.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildView(ctx, uc.bookRepo, c)
}
