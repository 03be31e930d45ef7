package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/leafside/internal/application/review"
	"github.com/xiebiao/leafside/internal/domain/user"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/response"
)

// ReviewHandler 图书评价和审核
type ReviewHandler struct {
	reviews    *appreview.ReviewUseCase
	moderation *appreview.ModerationUseCase
}

func NewReviewHandler(reviews *appreview.ReviewUseCase, moderation *appreview.ModerationUseCase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, moderation: moderation}
}

// includePending 普通用户和匿名用户只能看到已审核的评价
func includePending(c *gin.Context) (bool, bool) {
	var q dto.BookReviewsQuery
	if !bindQuery(c, &q) {
		return false, false
	}
	return q.IncludePending && middleware.HasRole(c, user.RoleAdmin), true
}

// ListByBook 图书评价列表
// @Summary      图书评价列表
// @Description  默认只返回已审核的评价；管理员可以用include_pending查看全部
// @Tags         评价
// @Produce      json
// @Param        bookId          path  int  true  "图书ID"
// @Param        include_pending query bool false "包含待审核（仅管理员）"
// @Success      200 {object} response.Response{data=[]appreview.ReviewResponse}
// @Router       /api/reviews/book/{bookId} [get]
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := paramID(c, "bookId")
	if !ok {
		return
	}
	pending, ok := includePending(c)
	if !ok {
		return
	}

	list, err := h.reviews.ListByBook(c.Request.Context(), bookID, pending)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Rating 图书评分汇总
// @Summary      图书评分汇总
// @Description  平均分保留两位小数，没有评价时为0
// @Tags         评价
// @Produce      json
// @Param        bookId          path  int  true  "图书ID"
// @Param        include_pending query bool false "包含待审核（仅管理员）"
// @Success      200 {object} response.Response{data=appreview.RatingResponse}
// @Router       /api/reviews/book/{bookId}/rating [get]
func (h *ReviewHandler) Rating(c *gin.Context) {
	bookID, ok := paramID(c, "bookId")
	if !ok {
		return
	}
	pending, ok := includePending(c)
	if !ok {
		return
	}

	r, err := h.reviews.Rating(c.Request.Context(), bookID, pending)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

// Mine 我对某本书的评价
// @Summary      我对某本书的评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      404 {object} response.Response "还没有评价"
// @Router       /api/reviews/book/{bookId}/my [get]
func (h *ReviewHandler) Mine(c *gin.Context) {
	bookID, ok := paramID(c, "bookId")
	if !ok {
		return
	}

	r, err := h.reviews.Mine(c.Request.Context(), middleware.GetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

// Create 发表评价
// @Summary      发表评价
// @Description  评分1-5，评价不超过2000字；每本书只能评价一次，提交后进入待审核
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "评价内容"
// @Success      201 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      409 {object} response.Response "已经评价过"
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.reviews.Submit(c.Request.Context(), middleware.GetUserID(c), req.BookID, req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, r)
}

// Update 修改评价
// @Summary      修改评价
// @Description  只能修改自己的评价，修改后重新进入待审核
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                     true "评价ID"
// @Param        request body dto.UpdateReviewRequest true "评价内容"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      403 {object} response.Response "不是自己的评价"
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.reviews.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

// Delete 删除评价
// @Summary      删除评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "不是自己的评价"
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResult{ID: id})
}

// ListPending 待审核评价
// @Summary      待审核评价
// @Tags         评价审核
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=application.Page[appreview.ReviewResponse]}
// @Router       /api/reviews/pending [get]
func (h *ReviewHandler) ListPending(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.moderation.ListPending(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Approve 审核通过
// @Summary      审核通过
// @Tags         评价审核
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Router       /api/reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	r, err := h.moderation.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

// Reject 驳回（删除评价）
// @Summary      驳回评价
// @Tags         评价审核
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response
// @Router       /api/reviews/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.moderation.Reject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResult{ID: id})
}
