package review

import (
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

var (
	ErrReviewNotFound  = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")
	ErrReviewDuplicate = apperrors.New(apperrors.ErrCodeReviewDuplicate, "您已经评价过这本书，请修改已有评价")
	ErrInvalidRating   = apperrors.New(apperrors.ErrCodeInvalidRating, "评分必须在1到5之间")
	ErrCommentTooLong  = apperrors.New(apperrors.ErrCodeInvalidParams, "评价内容不能超过2000字")
	ErrNotReviewAuthor = apperrors.New(apperrors.ErrCodeForbidden, "只能修改或删除自己的评价")
)
