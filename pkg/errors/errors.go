package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// Code给客户端判断错误类型，Message是用户可见的提示，Err只进日志不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，包装过的预定义错误仍然能被errors.Is识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 错误码对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return StatusOf(e.Code)
}

// WithErr 复制一份预定义错误并附带内部原因
func (e *AppError) WithErr(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// WithMessage 复制一份预定义错误并替换提示信息
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	return &AppError{Code: e.Code, Message: fmt.Sprintf(format, args...), Err: e.Err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误），隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400
	ErrCodeUserNotFound     = 40401
	ErrCodeBookNotFound     = 40402
	ErrCodeOrderNotFound    = 40403
	ErrCodeReviewNotFound   = 40404
	ErrCodeCartNotFound     = 40406

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError      = 40000
	ErrCodeInvalidOrderStatus = 40002 // 订单状态非法
	ErrCodeEmailDuplicate     = 40003
	ErrCodeISBNDuplicate      = 40004
	ErrCodeWeakPassword       = 40005
	ErrCodeReviewDuplicate    = 40006 // 已评价过该图书
	ErrCodeFavoriteDuplicate  = 40007 // 已收藏该图书
	ErrCodeCartEmpty          = 40008
	ErrCodeDuplicateEntry     = 40009
	ErrCodeTotalMismatch      = 40010 // 客户端金额与服务端计算不一致
	ErrCodeInvalidRating      = 40011

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901

	// 限流（42900）
	ErrCodeTooManyRequests = 42900
)

// StatusOf 错误码 → HTTP状态码
func StatusOf(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code == ErrCodeForbidden:
		return http.StatusForbidden
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code == ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case code == ErrCodeEmailDuplicate, code == ErrCodeISBNDuplicate,
		code == ErrCodeReviewDuplicate, code == ErrCodeFavoriteDuplicate,
		code == ErrCodeDuplicateEntry, code == ErrCodeInvalidOrderStatus,
		code == ErrCodeCartEmpty:
		return http.StatusConflict
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "邮箱或密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 业务规则
	ErrBusiness       = New(ErrCodeBusinessError, "业务规则校验失败")
	ErrDuplicateEntry = New(ErrCodeDuplicateEntry, "记录已存在")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")

	ErrTooManyRequests = New(ErrCodeTooManyRequests, "请求过于频繁，请稍后再试")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HasCode 判断错误链中是否带有指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsInternal 5xxxx错误需要记录内部原因
func IsInternal(err *AppError) bool {
	return err.Code >= 50000
}
