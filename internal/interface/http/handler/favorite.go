package handler

import (
	"github.com/gin-gonic/gin"

	appfavorite "github.com/xiebiao/leafside/internal/application/favorite"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	"github.com/xiebiao/leafside/pkg/response"
)

type FavoriteHandler struct {
	favorites *appfavorite.FavoriteUseCase
}

func NewFavoriteHandler(favorites *appfavorite.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List 我的收藏
// @Summary      我的收藏
// @Description  按收藏时间倒序，附带图书摘要
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appfavorite.FavoriteResponse}
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	list, err := h.favorites.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Add 收藏图书
// @Summary      收藏图书
// @Tags         收藏
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddFavoriteRequest true "图书ID"
// @Success      201 {object} response.Response{data=appfavorite.FavoriteResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "已经收藏过"
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req dto.AddFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	f, err := h.favorites.Add(c.Request.Context(), middleware.GetUserID(c), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, f)
}

// Remove 取消收藏
// @Summary      取消收藏
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BoolResult} "success=false表示本来就没有收藏"
// @Router       /api/favorites/{bookId} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	bookID, ok := paramID(c, "bookId")
	if !ok {
		return
	}

	removed, err := h.favorites.Remove(c.Request.Context(), middleware.GetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.BoolResult{Success: removed})
}

// Check 是否已收藏
// @Summary      是否已收藏
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.FavoriteStatus}
// @Router       /api/favorites/{bookId}/check [get]
func (h *FavoriteHandler) Check(c *gin.Context) {
	bookID, ok := paramID(c, "bookId")
	if !ok {
		return
	}

	fav, err := h.favorites.IsFavorite(c.Request.Context(), middleware.GetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FavoriteStatus{BookID: bookID, IsFavorite: fav})
}

// Count 收藏数量
// @Summary      收藏数量
// @Tags         收藏
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CountResult}
// @Router       /api/favorites/count [get]
func (h *FavoriteHandler) Count(c *gin.Context) {
	n, err := h.favorites.Count(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CountResult{Count: n})
}
