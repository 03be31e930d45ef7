package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/leafside/internal/application/cart"
	apporder "github.com/xiebiao/leafside/internal/application/order"
	appstats "github.com/xiebiao/leafside/internal/application/stats"
	appuser "github.com/xiebiao/leafside/internal/application/user"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/response"
)

// AdminHandler 管理后台：订单、用户、购物车和统计
// 图书管理复用BookHandler
type AdminHandler struct {
	orders *apporder.AdminOrdersUseCase
	users  *appuser.ManageUsersUseCase
	carts  *appcart.AdminCartUseCase
	stats  *appstats.StatsUseCase
}

func NewAdminHandler(
	orders *apporder.AdminOrdersUseCase,
	users *appuser.ManageUsersUseCase,
	carts *appcart.AdminCartUseCase,
	stats *appstats.StatsUseCase,
) *AdminHandler {
	return &AdminHandler{orders: orders, users: users, carts: carts, stats: stats}
}

// ListOrders 订单列表
// @Summary      订单列表
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "页码" default(1)
// @Param        page_size query int    false "每页数量" default(20)
// @Param        status    query string false "订单状态" Enums(Pending, Processing, Shipped, Delivered, Cancelled)
// @Param        user_id   query int    false "用户ID"
// @Success      200 {object} response.Response{data=application.Page[apporder.OrderResponse]}
// @Router       /api/admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var q dto.ListOrdersQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.orders.List(c.Request.Context(), apporder.ListOrdersRequest{
		Page:     q.Page,
		PageSize: q.PageSize,
		Status:   q.Status,
		UserID:   q.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Router       /api/admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

// UpdateOrderStatus 修改订单状态
// @Summary      修改订单状态
// @Description  Pending→Processing→Shipped→Delivered；未完成的订单可以取消
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "无效的状态名"
// @Failure      409 {object} response.Response "当前状态不允许流转"
// @Router       /api/admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

// DeleteOrder 删除订单
// @Summary      删除订单
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Router       /api/admin/orders/{id} [delete]
func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResult{ID: id})
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "页码" default(1)
// @Param        page_size query int    false "每页数量" default(20)
// @Param        keyword   query string false "邮箱或姓名"
// @Param        role      query string false "角色" Enums(User, Admin)
// @Success      200 {object} response.Response{data=application.Page[appuser.UserInfo]}
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.ListUsersQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.users.List(c.Request.Context(), appuser.ListUsersRequest{
		Page:     q.Page,
		PageSize: q.PageSize,
		Keyword:  q.Keyword,
		Role:     q.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetUser 用户详情
// @Summary      用户详情
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=appuser.UserInfo}
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, u)
}

// UpdateUserRoles 修改用户角色
// @Summary      修改用户角色
// @Description  不能去掉自己的管理员角色
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "用户ID"
// @Param        request body dto.UpdateRolesRequest true "角色列表"
// @Success      200 {object} response.Response{data=appuser.UserInfo}
// @Router       /api/admin/users/{id}/roles [put]
func (h *AdminHandler) UpdateUserRoles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRolesRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.UpdateRoles(c.Request.Context(), middleware.GetUserID(c), id, req.Roles)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, u)
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  不能删除自己
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResult{ID: id})
}

// ListCarts 购物车列表
// @Summary      购物车列表
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=application.Page[appcart.CartSummary]}
// @Router       /api/admin/carts [get]
func (h *AdminHandler) ListCarts(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.carts.List(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetUserCart 某个用户的购物车
// @Summary      用户购物车
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Failure      404 {object} response.Response "用户还没有购物车"
// @Router       /api/admin/carts/user/{userId} [get]
func (h *AdminHandler) GetUserCart(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	v, err := h.carts.GetByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}

// UserStats 用户统计
// @Summary      用户统计
// @Description  用户总数、管理员数、近30天新增
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appstats.UserSummaryResponse}
// @Router       /api/admin/stats/users [get]
func (h *AdminHandler) UserStats(c *gin.Context) {
	s, err := h.stats.UserSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, s)
}

// Dashboard 运营看板
// @Summary      运营看板
// @Description  销售额只统计已送达的订单
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appstats.DashboardResponse}
// @Router       /api/admin/stats/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, d)
}
