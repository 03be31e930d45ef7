package review

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

// Review 图书评价
// 新建和修改后IsApproved都回到false，需要管理员重新审核
type Review struct {
	ID         uint
	UserID     uint
	BookID     uint
	Rating     int
	Comment    string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReview 创建待审核评价
func NewReview(userID, bookID uint, rating int, comment string) (*Review, error) {
	if err := validate(rating, comment); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Edit 修改评分和内容，并重新进入待审核状态
func (r *Review) Edit(rating int, comment string) error {
	if err := validate(rating, comment); err != nil {
		return err
	}
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.IsApproved = false
	r.UpdatedAt = time.Now()
	return nil
}

// Approve 审核通过
func (r *Review) Approve() {
	r.IsApproved = true
	r.UpdatedAt = time.Now()
}

// IsWrittenBy 是否为作者本人
func (r *Review) IsWrittenBy(userID uint) bool {
	return r.UserID == userID
}

func validate(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

// Rating 图书评分汇总
type Rating struct {
	BookID  uint
	Average float64
	Count   int64
}
