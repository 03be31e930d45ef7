package favorite

import (
	"context"

	"github.com/xiebiao/leafside/internal/domain/book"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 收藏领域服务
type Service interface {
	// Add 图书不存在返回NotFound，已收藏返回Conflict
	Add(ctx context.Context, userID, bookID uint) (*Favorite, error)
	Remove(ctx context.Context, userID, bookID uint) (bool, error)
	IsFavorite(ctx context.Context, userID, bookID uint) (bool, error)
	Count(ctx context.Context, userID uint) (int64, error)
	List(ctx context.Context, userID uint) ([]*Favorite, error)
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建收藏服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) Add(ctx context.Context, userID, bookID uint) (*Favorite, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFavoriteDuplicate
	}

	f := NewFavorite(userID, bookID)
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Remove(ctx context.Context, userID, bookID uint) (bool, error) {
	return s.repo.Delete(ctx, userID, bookID)
}

func (s *service) IsFavorite(ctx context.Context, userID, bookID uint) (bool, error) {
	return s.repo.Exists(ctx, userID, bookID)
}

func (s *service) Count(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, userID uint) ([]*Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}
