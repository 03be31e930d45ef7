package cart

import (
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

var (
	ErrCartNotFound    = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
	ErrCartEmpty       = apperrors.New(apperrors.ErrCodeCartEmpty, "购物车为空")
)
