package review

import (
	"context"
	"errors"

	"github.com/xiebiao/leafside/internal/domain/book"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 评价领域服务
type Service interface {
	// Create 每个用户对每本书只能评价一次，已评价过应改用Update
	Create(ctx context.Context, userID, bookID uint, rating int, comment string) (*Review, error)

	// Update 只有作者可以修改，修改后重新进入待审核
	Update(ctx context.Context, userID, reviewID uint, rating int, comment string) (*Review, error)

	// Delete 只有作者可以删除
	Delete(ctx context.Context, userID, reviewID uint) error

	ListByBook(ctx context.Context, bookID uint, onlyApproved bool) ([]*Review, error)
	GetUserReview(ctx context.Context, userID, bookID uint) (*Review, error)
	Summary(ctx context.Context, bookID uint, onlyApproved bool) (*Rating, error)

	// 审核
	ListPending(ctx context.Context, page, pageSize int) ([]*Review, int64, error)
	Approve(ctx context.Context, reviewID uint) (*Review, error)
	// Reject 驳回即删除，不保留驳回状态
	Reject(ctx context.Context, reviewID uint) error
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建评价服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) Create(ctx context.Context, userID, bookID uint, rating int, comment string) (*Review, error) {
	r, err := NewReview(userID, bookID, rating, comment)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if err == nil && existing != nil {
		return nil, ErrReviewDuplicate
	}
	if err != nil && !errors.Is(err, ErrReviewNotFound) {
		return nil, err
	}

	// 并发提交时由唯一索引兜底
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Update(ctx context.Context, userID, reviewID uint, rating int, comment string) (*Review, error) {
	r, err := s.authored(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := r.Edit(rating, comment); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, userID, reviewID uint) error {
	if _, err := s.authored(ctx, userID, reviewID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reviewID)
}

func (s *service) authored(ctx context.Context, userID, reviewID uint) (*Review, error) {
	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !r.IsWrittenBy(userID) {
		return nil, ErrNotReviewAuthor
	}
	return r, nil
}

func (s *service) ListByBook(ctx context.Context, bookID uint, onlyApproved bool) ([]*Review, error) {
	return s.repo.ListByBook(ctx, bookID, onlyApproved)
}

func (s *service) GetUserReview(ctx context.Context, userID, bookID uint) (*Review, error) {
	return s.repo.FindByUserAndBook(ctx, userID, bookID)
}

func (s *service) Summary(ctx context.Context, bookID uint, onlyApproved bool) (*Rating, error) {
	return s.repo.Summary(ctx, bookID, onlyApproved)
}

func (s *service) ListPending(ctx context.Context, page, pageSize int) ([]*Review, int64, error) {
	return s.repo.ListPending(ctx, page, pageSize)
}

func (s *service) Approve(ctx context.Context, reviewID uint) (*Review, error) {
	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	r.Approve()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Reject(ctx context.Context, reviewID uint) error {
	if _, err := s.repo.FindByID(ctx, reviewID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reviewID)
}
