package handler

import (
	"github.com/gin-gonic/gin"

	appstats "github.com/xiebiao/leafside/internal/application/stats"
	appuser "github.com/xiebiao/leafside/internal/application/user"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/response"
)

// AccountHandler 注册、登录和个人中心
type AccountHandler struct {
	register *appuser.RegisterUseCase
	login    *appuser.LoginUseCase
	refresh  *appuser.RefreshUseCase
	logout   *appuser.LogoutUseCase
	profile  *appuser.ProfileUseCase
	stats    *appstats.StatsUseCase
}

func NewAccountHandler(
	register *appuser.RegisterUseCase,
	login *appuser.LoginUseCase,
	refresh *appuser.RefreshUseCase,
	logout *appuser.LogoutUseCase,
	profile *appuser.ProfileUseCase,
	stats *appstats.StatsUseCase,
) *AccountHandler {
	return &AccountHandler{
		register: register,
		login:    login,
		refresh:  refresh,
		logout:   logout,
		profile:  profile,
		stats:    stats,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建普通用户账号，密码至少8位且同时包含字母和数字
// @Tags         账号
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserInfo}
// @Failure      400 {object} response.Response "参数错误或密码强度不足"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/account/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.register.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证邮箱密码，返回Access Token和Refresh Token
// @Tags         账号
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.TokenResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/account/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.login.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Refresh 刷新Token
// @Summary      刷新Token
// @Description  用Refresh Token换发新的Token对，旧的Refresh Token作废
// @Tags         账号
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=appuser.TokenResponse}
// @Failure      401 {object} response.Response "Token无效或已过期"
// @Router       /api/account/refresh [post]
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 注销
// @Summary      注销
// @Description  删除会话，当前Access Token在过期前不能再使用
// @Tags         账号
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/account/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetProfile 个人资料
// @Summary      个人资料
// @Tags         账号
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserInfo}
// @Router       /api/account/profile [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	info, err := h.profile.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// UpdateProfile 修改个人资料
// @Summary      修改个人资料
// @Description  只修改请求中出现的字段
// @Tags         账号
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "个人资料"
// @Success      200 {object} response.Response{data=appuser.UserInfo}
// @Router       /api/account/profile [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.profile.Update(c.Request.Context(), middleware.GetUserID(c), req.Profile())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Stats 个人统计
// @Summary      个人统计
// @Description  订单数、已购图书册数、购物车条目数、收藏数
// @Tags         账号
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appstats.UserStatsResponse}
// @Router       /api/account/stats [get]
func (h *AccountHandler) Stats(c *gin.Context) {
	s, err := h.stats.UserStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s)
}
