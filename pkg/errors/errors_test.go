package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	notFound := New(ErrCodeBookNotFound, "图书不存在")

	wrapped := fmt.Errorf("repo: %w", notFound.WithErr(errors.New("record not found")))

	assert.True(t, errors.Is(wrapped, notFound))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.True(t, HasCode(wrapped, ErrCodeBookNotFound))
}

func TestAppError_WithMessage(t *testing.T) {
	e := ErrInvalidParams.WithMessage("数量必须大于0: %d", 0)
	assert.Equal(t, ErrCodeInvalidParams, e.Code)
	assert.Equal(t, "数量必须大于0: 0", e.Message)
	// 预定义错误本身不被修改
	assert.Equal(t, "参数错误", ErrInvalidParams.Message)
}

func TestGetAppError(t *testing.T) {
	plain := errors.New("connection refused")
	appErr := GetAppError(plain)

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.True(t, IsInternal(appErr))
	assert.ErrorIs(t, appErr, plain)

	assert.Same(t, ErrUnauthorized, GetAppError(ErrUnauthorized))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{0, http.StatusOK},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeOrderNotFound, http.StatusNotFound},
		{ErrCodeReviewDuplicate, http.StatusConflict},
		{ErrCodeFavoriteDuplicate, http.StatusConflict},
		{ErrCodeCartEmpty, http.StatusConflict},
		{ErrCodeInvalidOrderStatus, http.StatusConflict},
		{ErrCodeInvalidRating, http.StatusBadRequest},
		{ErrCodeTotalMismatch, http.StatusBadRequest},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code_%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.code))
		})
	}
}
