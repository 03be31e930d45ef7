package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/leafside/internal/domain/book"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 购物车领域服务
type Service interface {
	// GetOrCreate 返回用户的购物车，不存在则创建空购物车
	GetOrCreate(ctx context.Context, userID uint) (*Cart, error)

	// AddOrUpdateItem 设置某本书的数量；新条目按当前价格生成快照，已有条目只改数量
	AddOrUpdateItem(ctx context.Context, userID, bookID uint, quantity int) (*Cart, error)

	// RemoveItem 没有可删除的条目时返回false
	RemoveItem(ctx context.Context, userID, bookID uint) (bool, error)

	// Clear 购物车本来就是空的时返回false
	Clear(ctx context.Context, userID uint) (bool, error)

	GetByUserID(ctx context.Context, userID uint) (*Cart, error)
	ListCarts(ctx context.Context, page, pageSize int) ([]*Cart, int64, error)
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建购物车服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) GetOrCreate(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	c = NewCart(userID)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) AddOrUpdateItem(ctx context.Context, userID, bookID uint, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	b, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := c.FindItem(bookID)
	if item == nil {
		item = NewItem(c.ID, bookID, quantity, b.Price)
		c.Items = append(c.Items, item)
	} else {
		item.SetQuantity(quantity, b.Price)
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, bookID uint) (bool, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.repo.DeleteItem(ctx, c.ID, bookID)
}

func (s *service) Clear(ctx context.Context, userID uint) (bool, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return false, nil
		}
		return false, err
	}
	n, err := s.repo.ClearItems(ctx, c.ID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *service) GetByUserID(ctx context.Context, userID uint) (*Cart, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) ListCarts(ctx context.Context, page, pageSize int) ([]*Cart, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}
