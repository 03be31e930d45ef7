package user

import (
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

var (
	ErrUserNotFound     = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")
	ErrEmailDuplicate   = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrWeakPassword     = apperrors.New(apperrors.ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")
	ErrInvalidEmail     = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrInvalidRole      = apperrors.New(apperrors.ErrCodeInvalidParams, "角色不合法")
	ErrCannotDemoteSelf = apperrors.New(apperrors.ErrCodeBusinessError, "不能移除自己的管理员角色或删除自己")
)
