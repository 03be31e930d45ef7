package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/leafside/internal/domain/favorite"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) favorite.Repository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, f *favorite.Favorite) error {
	model := &FavoriteModel{UserID: f.UserID, BookID: f.BookID, CreatedAt: f.CreatedAt}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return favorite.ErrFavoriteDuplicate
		}
		return apperrors.Wrap(err, "添加收藏失败")
	}
	f.ID = model.ID
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, bookID uint) (bool, error) {
	result := getDB(ctx, r.db).Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&FavoriteModel{})
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "取消收藏失败")
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&FavoriteModel{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询收藏失败")
	}
	return count > 0, nil
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&FavoriteModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计收藏数量失败")
	}
	return count, nil
}

// ListByUser 最近收藏的在前
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]*favorite.Favorite, error) {
	var models []FavoriteModel
	if err := getDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询收藏列表失败")
	}

	out := make([]*favorite.Favorite, len(models))
	for i, m := range models {
		out[i] = &favorite.Favorite{ID: m.ID, UserID: m.UserID, BookID: m.BookID, CreatedAt: m.CreatedAt}
	}
	return out, nil
}
