package favorite

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/favorite"
	"github.com/xiebiao/leafside/pkg/money"
)

// FavoriteResponse 收藏项，图书已删除时Book为nil
type FavoriteResponse struct {
	ID        uint         `json:"id"`
	BookID    uint         `json:"book_id"`
	Book      *BookSummary `json:"book"`
	CreatedAt time.Time    `json:"created_at"`
}

// BookSummary 收藏列表中的图书摘要
type BookSummary struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	CoverURL    string          `json:"cover_url"`
	IsAvailable bool            `json:"is_available"`
}

// FavoriteUseCase 用户收藏
type FavoriteUseCase struct {
	favoriteService favorite.Service
	bookRepo        book.Repository
}

func NewFavoriteUseCase(favoriteService favorite.Service, bookRepo book.Repository) *FavoriteUseCase {
	return &FavoriteUseCase{favoriteService: favoriteService, bookRepo: bookRepo}
}

func (uc *FavoriteUseCase) Add(ctx context.Context, userID, bookID uint) (*FavoriteResponse, error) {
	f, err := uc.favoriteService.Add(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return &FavoriteResponse{ID: f.ID, BookID: f.BookID, CreatedAt: f.CreatedAt}, nil
}

// Remove 没有收藏时返回false
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, bookID uint) (bool, error) {
	return uc.favoriteService.Remove(ctx, userID, bookID)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, bookID uint) (bool, error) {
	return uc.favoriteService.IsFavorite(ctx, userID, bookID)
}

func (uc *FavoriteUseCase) Count(ctx context.Context, userID uint) (int64, error) {
	return uc.favoriteService.Count(ctx, userID)
}

// List 按收藏时间倒序，附带图书摘要
func (uc *FavoriteUseCase) List(ctx context.Context, userID uint) ([]*FavoriteResponse, error) {
	favs, err := uc.favoriteService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := lo.Map(favs, func(f *favorite.Favorite, _ int) uint { return f.BookID })
	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(books, func(b *book.Book) uint { return b.ID })

	return lo.Map(favs, func(f *favorite.Favorite, _ int) *FavoriteResponse {
		resp := &FavoriteResponse{ID: f.ID, BookID: f.BookID, CreatedAt: f.CreatedAt}
		if b, ok := byID[f.BookID]; ok {
			resp.Book = &BookSummary{
				Title:       b.Title,
				Author:      b.Author,
				Price:       money.ToDecimal(b.Price),
				CoverURL:    b.CoverURL,
				IsAvailable: b.IsAvailable,
			}
		}
		return resp
	}), nil
}
