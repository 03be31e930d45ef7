package order

import (
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound           = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")
	ErrInvalidStatus           = apperrors.New(apperrors.ErrCodeInvalidParams, "未知的订单状态")
	ErrNotOrderOwner           = apperrors.New(apperrors.ErrCodeForbidden, "无权操作此订单")
	ErrInvalidOrderItems       = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")
	ErrInvalidQuantity         = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
	ErrTotalMismatch           = apperrors.New(apperrors.ErrCodeTotalMismatch, "订单金额与服务端计算结果不一致")
	ErrNoPurchasableItems      = apperrors.New(apperrors.ErrCodeCartEmpty, "购物车中没有可下单的图书")
)
