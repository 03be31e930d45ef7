// Package handler HTTP处理器
//
// Handler只负责HTTP相关的事情：解析请求、调用应用层用例、返回统一响应，
// 不包含业务逻辑。
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/response"
)

// bindJSON 绑定失败时写入40900响应并返回false
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("参数错误: %s", err.Error()))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("参数错误: %s", err.Error()))
		return false
	}
	return true
}

// paramID 解析路径中的正整数ID
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrBindError.WithMessage("无效的%s", name))
		return 0, false
	}
	return uint(id), true
}
