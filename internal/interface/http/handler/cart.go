package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/leafside/internal/application/cart"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/response"
)

// CartHandler 购物车
type CartHandler struct {
	cart *appcart.CartUseCase
}

func NewCartHandler(cart *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get 我的购物车
// @Summary      我的购物车
// @Description  首次访问时创建空购物车；单价优先使用加入时的价格快照
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	v, err := h.cart.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  设置某本书的数量；已在购物车中时只修改数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书和数量"
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.cart.AddItem(c.Request.Context(), middleware.GetUserID(c), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, v)
}

// RemoveItem 移出购物车
// @Summary      移出购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BoolResult} "success=false表示购物车中没有这本书"
// @Router       /api/cart/items/{bookId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, ok := paramID(c, "bookId")
	if !ok {
		return
	}

	removed, err := h.cart.RemoveItem(c.Request.Context(), middleware.GetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.BoolResult{Success: removed})
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.BoolResult} "success=false表示购物车本来就是空的"
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	cleared, err := h.cart.Clear(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.BoolResult{Success: cleared})
}
