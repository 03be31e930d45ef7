package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/leafside/internal/application/book"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/pkg/response"
)

// BookHandler 图书目录
type BookHandler struct {
	query  *appbook.ListBooksUseCase
	manage *appbook.ManageBookUseCase
}

func NewBookHandler(query *appbook.ListBooksUseCase, manage *appbook.ManageBookUseCase) *BookHandler {
	return &BookHandler{query: query, manage: manage}
}

// List 图书列表
// @Summary      图书列表
// @Description  关键字匹配书名、作者、出版社；默认每页20条，最多100条
// @Tags         图书
// @Produce      json
// @Param        page           query int    false "页码" default(1)
// @Param        page_size      query int    false "每页数量" default(20)
// @Param        keyword        query string false "关键字"
// @Param        genre          query string false "分类"
// @Param        author         query string false "作者"
// @Param        only_available query bool   false "只看在售"
// @Param        sort_by        query string false "排序" Enums(price_asc, price_desc, created_at_desc, title_asc)
// @Success      200 {object} response.Response{data=application.Page[appbook.BookListItem]}
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.query.Execute(c.Request.Context(), q.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.query.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// Create 新增图书
// @Summary      新增图书
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.manage.Create(c.Request.Context(), req.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

// Update 修改图书
// @Summary      修改图书
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.manage.Update(c.Request.Context(), id, req.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// Delete 删除图书（软删除）
// @Summary      删除图书
// @Tags         图书管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.manage.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResult{ID: id})
}
