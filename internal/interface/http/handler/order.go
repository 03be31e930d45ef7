package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/leafside/internal/application/order"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/response"
)

// OrderHandler 买家订单
type OrderHandler struct {
	create *apporder.CreateOrderUseCase
	mine   *apporder.MyOrdersUseCase
}

func NewOrderHandler(create *apporder.CreateOrderUseCase, mine *apporder.MyOrdersUseCase) *OrderHandler {
	return &OrderHandler{create: create, mine: mine}
}

// Create 直接下单
// @Summary      直接下单
// @Description  按请求中的图书和数量下单，价格以服务端为准；expected_total与服务端总额相差超过0.01时拒绝
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "下单信息"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "参数错误、图书已下架或金额不一致"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.create.Execute(c.Request.Context(), req.ToApp(middleware.GetUserID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, o)
}

// Checkout 购物车结算
// @Summary      购物车结算
// @Description  用购物车中的图书下单，按加入时的价格快照计价，成功后清空购物车；已删除的图书被跳过
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "收货信息"
// @Success      201 {object} response.Response{data=apporder.OrderResponse}
// @Failure      400 {object} response.Response "没有可购买的图书"
// @Failure      409 {object} response.Response "购物车为空"
// @Router       /api/orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.create.Checkout(c.Request.Context(), req.ToApp(middleware.GetUserID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, o)
}

// List 我的订单
// @Summary      我的订单
// @Description  按下单时间倒序
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=application.Page[apporder.OrderResponse]}
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.mine.List(c.Request.Context(), middleware.GetUserID(c), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Get 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      403 {object} response.Response "不是自己的订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.mine.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

// ConfirmDelivery 确认收货
// @Summary      确认收货
// @Description  只能确认自己已发货的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      409 {object} response.Response "订单状态不允许确认收货"
// @Failure      403 {object} response.Response "不是自己的订单"
// @Router       /api/orders/{id}/confirm-delivery [put]
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.mine.ConfirmDelivery(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}
