package review

import (
	"context"
	"math"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/internal/domain/review"
	"github.com/xiebiao/leafside/pkg/logger"
)

// ReviewResponse 评价
type ReviewResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	BookID     uint      `json:"book_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RatingResponse 评分汇总，平均分保留两位小数
type RatingResponse struct {
	BookID        uint    `json:"book_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func toReviewResponse(r *review.Review, _ int) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ReviewUseCase 用户评价及公开查询
type ReviewUseCase struct {
	reviewService review.Service
	publisher     application.EventPublisher
}

func NewReviewUseCase(reviewService review.Service, publisher application.EventPublisher) *ReviewUseCase {
	return &ReviewUseCase{reviewService: reviewService, publisher: publisher}
}

// Submit 提交后进入待审核
func (uc *ReviewUseCase) Submit(ctx context.Context, userID, bookID uint, rating int, comment string) (*ReviewResponse, error) {
	r, err := uc.reviewService.Create(ctx, userID, bookID, rating, comment)
	if err != nil {
		return nil, err
	}
	uc.submitted(ctx, r)
	return toReviewResponse(r, 0), nil
}

// Update 修改后重新进入待审核
func (uc *ReviewUseCase) Update(ctx context.Context, userID, reviewID uint, rating int, comment string) (*ReviewResponse, error) {
	r, err := uc.reviewService.Update(ctx, userID, reviewID, rating, comment)
	if err != nil {
		return nil, err
	}
	uc.submitted(ctx, r)
	return toReviewResponse(r, 0), nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, userID, reviewID uint) error {
	return uc.reviewService.Delete(ctx, userID, reviewID)
}

// ListByBook includePending只对管理员开放
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint, includePending bool) ([]*ReviewResponse, error) {
	reviews, err := uc.reviewService.ListByBook(ctx, bookID, !includePending)
	if err != nil {
		return nil, err
	}
	return lo.Map(reviews, toReviewResponse), nil
}

func (uc *ReviewUseCase) Rating(ctx context.Context, bookID uint, includePending bool) (*RatingResponse, error) {
	s, err := uc.reviewService.Summary(ctx, bookID, !includePending)
	if err != nil {
		return nil, err
	}
	return &RatingResponse{
		BookID:        bookID,
		AverageRating: math.Round(s.Average*100) / 100,
		ReviewCount:   s.Count,
	}, nil
}

// Mine 当前用户对某本书的评价，没有时返回NotFound
func (uc *ReviewUseCase) Mine(ctx context.Context, userID, bookID uint) (*ReviewResponse, error) {
	r, err := uc.reviewService.GetUserReview(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(r, 0), nil
}

func (uc *ReviewUseCase) submitted(ctx context.Context, r *review.Review) {
	application.PublishEvent(ctx, uc.publisher, event.ReviewSubmitted, event.ReviewSubmittedPayload{
		ReviewID: r.ID,
		BookID:   r.BookID,
		UserID:   r.UserID,
		Rating:   r.Rating,
	})
}

// ModerationUseCase 管理员审核评价
type ModerationUseCase struct {
	reviewService review.Service
}

func NewModerationUseCase(reviewService review.Service) *ModerationUseCase {
	return &ModerationUseCase{reviewService: reviewService}
}

// ListPending 按提交时间正序，先提交的先审核
func (uc *ModerationUseCase) ListPending(ctx context.Context, page, pageSize int) (*application.Page[*ReviewResponse], error) {
	page, pageSize = application.NormalizePage(page, pageSize)

	reviews, total, err := uc.reviewService.ListPending(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return application.NewPage(lo.Map(reviews, toReviewResponse), total, page, pageSize), nil
}

func (uc *ModerationUseCase) Approve(ctx context.Context, reviewID uint) (*ReviewResponse, error) {
	r, err := uc.reviewService.Approve(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("评价审核通过", zap.Uint("review_id", reviewID))
	return toReviewResponse(r, 0), nil
}

// Reject 驳回即删除
func (uc *ModerationUseCase) Reject(ctx context.Context, reviewID uint) error {
	if err := uc.reviewService.Reject(ctx, reviewID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("评价已驳回", zap.Uint("review_id", reviewID))
	return nil
}
