package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/leafside/internal/domain/review"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create (user_id, book_id)唯一索引冲突转换为ErrReviewDuplicate
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrReviewDuplicate
		}
		return apperrors.Wrap(err, "创建评价失败")
	}
	rv.ID = model.ID
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).Where("user_id = ? AND book_id = ?", userID, bookID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	if err := getDB(ctx, r.db).Save(toReviewModel(rv)).Error; err != nil {
		return apperrors.Wrap(err, "更新评价失败")
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// ListByBook 最新的评价在前
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint, onlyApproved bool) ([]*review.Review, error) {
	query := getDB(ctx, r.db).Where("book_id = ?", bookID)
	if onlyApproved {
		query = query.Where("is_approved = ?", true)
	}

	var models []ReviewModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评价列表失败")
	}
	return toReviewEntities(models), nil
}

// ListPending 待审核评价，先提交的先审
func (r *reviewRepository) ListPending(ctx context.Context, page, pageSize int) ([]*review.Review, int64, error) {
	query := getDB(ctx, r.db).Model(&ReviewModel{}).Where("is_approved = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计待审核评价失败")
	}

	var models []ReviewModel
	if err := query.Order("created_at ASC").Scopes(paginate(page, pageSize)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询待审核评价失败")
	}
	return toReviewEntities(models), total, nil
}

// Summary 平均分和评价数，没有评价时平均分为0
func (r *reviewRepository) Summary(ctx context.Context, bookID uint, onlyApproved bool) (*review.Rating, error) {
	var row struct {
		Average float64
		Count   int64
	}
	query := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID)
	if onlyApproved {
		query = query.Where("is_approved = ?", true)
	}
	if err := query.Scan(&row).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计评分失败")
	}
	return &review.Rating{BookID: bookID, Average: row.Average, Count: row.Count}, nil
}

func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:         rv.ID,
		UserID:     rv.UserID,
		BookID:     rv.BookID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		IsApproved: rv.IsApproved,
		CreatedAt:  rv.CreatedAt,
		UpdatedAt:  rv.UpdatedAt,
	}
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:         m.ID,
		UserID:     m.UserID,
		BookID:     m.BookID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		IsApproved: m.IsApproved,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toReviewEntities(models []ReviewModel) []*review.Review {
	out := make([]*review.Review, len(models))
	for i := range models {
		out[i] = toReviewEntity(&models[i])
	}
	return out
}
