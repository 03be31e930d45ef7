package book

import (
	"context"

	"github.com/samber/lo"

	"github.com/xiebiao/leafside/internal/application"
	"github.com/xiebiao/leafside/internal/domain/book"
)

// ListBooksUseCase 图书列表和详情查询（公开接口）
type ListBooksUseCase struct {
	bookService book.Service
}

func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询参数
type ListBooksRequest struct {
	Page          int
	PageSize      int
	Keyword       string // 搜索标题、作者、出版社
	Genre         string
	Author        string
	OnlyAvailable bool
	SortBy        string // price_asc | price_desc | created_at_desc | title_asc
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*application.Page[*BookListItem], error) {
	page, size := application.NormalizePage(req.Page, req.PageSize)

	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:          page,
		PageSize:      size,
		Keyword:       req.Keyword,
		Genre:         req.Genre,
		Author:        req.Author,
		OnlyAvailable: req.OnlyAvailable,
		SortBy:        req.SortBy,
	})
	if err != nil {
		return nil, err
	}
	return application.NewPage(lo.Map(books, toListItem), total, page, size), nil
}

// Get 详情走缓存
func (uc *ListBooksUseCase) Get(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBookResponse(b), nil
}
