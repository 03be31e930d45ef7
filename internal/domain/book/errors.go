package book

import (
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound  = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")
	ErrInvalidPrice  = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
	ErrInvalidISBN   = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "书名和作者不能为空")
	ErrInvalidPages  = apperrors.New(apperrors.ErrCodeInvalidParams, "页数不能为负数")
)
