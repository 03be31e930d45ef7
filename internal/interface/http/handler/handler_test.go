package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/leafside/internal/application"
	appbook "github.com/xiebiao/leafside/internal/application/book"
	appfavorite "github.com/xiebiao/leafside/internal/application/favorite"
	appreview "github.com/xiebiao/leafside/internal/application/review"
	"github.com/xiebiao/leafside/internal/domain/book"
	bookmocks "github.com/xiebiao/leafside/internal/domain/book/mocks"
	favoritemocks "github.com/xiebiao/leafside/internal/domain/favorite/mocks"
	"github.com/xiebiao/leafside/internal/domain/review"
	reviewmocks "github.com/xiebiao/leafside/internal/domain/review/mocks"
	"github.com/xiebiao/leafside/internal/interface/http/dto"
	"github.com/xiebiao/leafside/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
	"github.com/xiebiao/leafside/pkg/jwt"
	"github.com/xiebiao/leafside/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = dto.RegisterValidators()
}

// asUser 模拟认证中间件写入的用户信息
func asUser(id uint, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextRoles, roles)
		c.Set(middleware.ContextClaims, &jwt.Claims{UserID: id, Roles: roles})
		c.Next()
	}
}

func do(r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := bookmocks.NewMockService(ctrl)
	h := NewBookHandler(appbook.NewListBooksUseCase(svc), appbook.NewManageBookUseCase(svc))

	r := gin.New()
	r.GET("/api/books", h.List)
	r.GET("/api/books/:id", h.Get)
	r.POST("/api/books", h.Create)

	t.Run("列表分页参数修正", func(t *testing.T) {
		svc.EXPECT().ListBooks(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p book.ListParams) ([]*book.Book, int64, error) {
				assert.Equal(t, 1, p.Page)
				assert.Equal(t, application.MaxPageSize, p.PageSize)
				assert.Equal(t, "Go", p.Keyword)
				return []*book.Book{{ID: 1, Title: "Go语言实战", Price: 5900}}, 1, nil
			})

		w, resp := do(r, http.MethodGet, "/api/books?page=0&page_size=500&keyword=Go", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, resp.Code)
		assert.Contains(t, w.Body.String(), `"total_pages":1`)
		assert.Contains(t, w.Body.String(), "Go语言实战")
	})

	t.Run("非法排序字段", func(t *testing.T) {
		w, resp := do(r, http.MethodGet, "/api/books?sort_by=rating", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	})

	t.Run("非法ID", func(t *testing.T) {
		w, resp := do(r, http.MethodGet, "/api/books/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc.EXPECT().GetBook(gomock.Any(), uint(404)).Return(nil, book.ErrBookNotFound)

		w, resp := do(r, http.MethodGet, "/api/books/404", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
	})

	t.Run("ISBN格式校验", func(t *testing.T) {
		w, resp := do(r, http.MethodPost, "/api/books", gin.H{
			"isbn": "12345", "title": "T", "author": "A", "price": 10,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	})

	t.Run("新增图书价格按分存储", func(t *testing.T) {
		svc.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a book.Attributes) (*book.Book, error) {
				assert.Equal(t, int64(5990), a.Price)
				assert.True(t, a.IsAvailable)
				return book.NewBook(a), nil
			})

		w, resp := do(r, http.MethodPost, "/api/books", gin.H{
			"isbn": "978-7-115-42802-8", "title": "Go语言实战", "author": "威廉", "price": 59.9,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 0, resp.Code)
	})
}

func TestReviewHandler_IncludePending(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := reviewmocks.NewMockService(ctrl)
	h := NewReviewHandler(appreview.NewReviewUseCase(svc, application.NopPublisher{}), appreview.NewModerationUseCase(svc))

	anonymous := gin.New()
	anonymous.GET("/api/reviews/book/:bookId", h.ListByBook)

	admin := gin.New()
	admin.GET("/api/reviews/book/:bookId", asUser(1, "Admin"), h.ListByBook)

	// 普通用户即使传了include_pending也只能看到已审核的
	svc.EXPECT().ListByBook(gomock.Any(), uint(3), true).Return([]*review.Review{}, nil)
	w, _ := do(anonymous, http.MethodGet, "/api/reviews/book/3?include_pending=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.EXPECT().ListByBook(gomock.Any(), uint(3), false).Return([]*review.Review{
		{ID: 1, BookID: 3, Rating: 4},
	}, nil)
	w, _ = do(admin, http.MethodGet, "/api/reviews/book/3?include_pending=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := reviewmocks.NewMockService(ctrl)
	h := NewReviewHandler(appreview.NewReviewUseCase(svc, application.NopPublisher{}), appreview.NewModerationUseCase(svc))

	r := gin.New()
	r.POST("/api/reviews", asUser(9), h.Create)

	svc.EXPECT().Create(gomock.Any(), uint(9), uint(3), 5, "好书").Return(nil, review.ErrReviewDuplicate)

	w, resp := do(r, http.MethodPost, "/api/reviews", gin.H{"book_id": 3, "rating": 5, "comment": "好书"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.ErrCodeReviewDuplicate, resp.Code)
}

func TestFavoriteHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := favoritemocks.NewMockService(ctrl)
	bookRepo := bookmocks.NewMockRepository(ctrl)
	h := NewFavoriteHandler(appfavorite.NewFavoriteUseCase(svc, bookRepo))

	r := gin.New()
	g := r.Group("/api/favorites", asUser(5))
	g.GET("/count", h.Count)
	g.GET("/:bookId/check", h.Check)
	g.DELETE("/:bookId", h.Remove)

	svc.EXPECT().Count(gomock.Any(), uint(5)).Return(int64(3), nil)
	w, _ := do(r, http.MethodGet, "/api/favorites/count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)

	svc.EXPECT().IsFavorite(gomock.Any(), uint(5), uint(8)).Return(true, nil)
	w, _ = do(r, http.MethodGet, "/api/favorites/8/check", nil)
	assert.Contains(t, w.Body.String(), `"is_favorite":true`)

	svc.EXPECT().Remove(gomock.Any(), uint(5), uint(8)).Return(false, nil)
	w, _ = do(r, http.MethodDelete, "/api/favorites/8", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandlerWithChecks(map[string]Checker{
		"mysql": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	r := gin.New()
	r.GET("/ping", h.Ping)
	r.GET("/api/health", h.Health)

	w, _ := do(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
	assert.Contains(t, w.Body.String(), `"mysql":"up"`)
	assert.NotContains(t, w.Body.String(), "refused")
}
