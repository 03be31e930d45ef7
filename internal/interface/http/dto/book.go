package dto

import (
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/leafside/internal/application/book"
	"github.com/xiebiao/leafside/pkg/money"
)

// BookRequest 新增和修改图书
// price单位为元（两位小数），负数由领域层拒绝
type BookRequest struct {
	ISBN          string          `json:"isbn" binding:"omitempty,isbn" example:"978-7-115-42802-8"`
	Title         string          `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author        string          `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Publisher     string          `json:"publisher" binding:"max=100" example:"人民邮电出版社"`
	Description   string          `json:"description" binding:"max=5000"`
	Genre         string          `json:"genre" binding:"max=50" example:"编程"`
	Language      string          `json:"language" binding:"max=30" example:"中文"`
	PageCount     int             `json:"page_count" example:"320"`
	PublishedYear int             `json:"published_year" binding:"omitempty,min=1000,max=9999" example:"2017"`
	Price         decimal.Decimal `json:"price" swaggertype:"number" example:"59.00"`
	CoverURL      string          `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	IsAvailable   *bool           `json:"is_available" example:"true"`
}

// ToApp 默认上架
func (r *BookRequest) ToApp() appbook.BookRequest {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return appbook.BookRequest{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		Description:   r.Description,
		Genre:         r.Genre,
		Language:      r.Language,
		PageCount:     r.PageCount,
		PublishedYear: r.PublishedYear,
		Price:         money.FromDecimal(r.Price),
		CoverURL:      r.CoverURL,
		IsAvailable:   available,
	}
}

// ListBooksQuery 图书列表查询
type ListBooksQuery struct {
	PageQuery
	Keyword       string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	Genre         string `form:"genre" binding:"omitempty,max=50"`
	Author        string `form:"author" binding:"omitempty,max=100"`
	OnlyAvailable bool   `form:"only_available"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc title_asc" example:"created_at_desc"`
}

func (q *ListBooksQuery) ToApp() appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		Page:          q.Page,
		PageSize:      q.PageSize,
		Keyword:       q.Keyword,
		Genre:         q.Genre,
		Author:        q.Author,
		OnlyAvailable: q.OnlyAvailable,
		SortBy:        q.SortBy,
	}
}
