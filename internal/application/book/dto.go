package book

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/pkg/money"
)

// BookResponse 图书详情
type BookResponse struct {
	ID            uint            `json:"id"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Publisher     string          `json:"publisher"`
	Description   string          `json:"description"`
	Genre         string          `json:"genre"`
	Language      string          `json:"language"`
	PageCount     int             `json:"page_count"`
	PublishedYear int             `json:"published_year"`
	Price         decimal.Decimal `json:"price"`
	CoverURL      string          `json:"cover_url"`
	IsAvailable   bool            `json:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookListItem 列表项，不含description
type BookListItem struct {
	ID          uint            `json:"id"`
	ISBN        string          `json:"isbn"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Publisher   string          `json:"publisher"`
	Genre       string          `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	CoverURL    string          `json:"cover_url"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BookRequest 新增和修改图书共用，价格单位为分
type BookRequest struct {
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	Description   string
	Genre         string
	Language      string
	PageCount     int
	PublishedYear int
	Price         int64
	CoverURL      string
	IsAvailable   bool
}

func (r BookRequest) attributes() book.Attributes {
	return book.Attributes{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		Description:   r.Description,
		Genre:         r.Genre,
		Language:      r.Language,
		PageCount:     r.PageCount,
		PublishedYear: r.PublishedYear,
		Price:         r.Price,
		CoverURL:      r.CoverURL,
		IsAvailable:   r.IsAvailable,
	}
}

// ToBookResponse 领域实体 → 详情DTO
func ToBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		Description:   b.Description,
		Genre:         b.Genre,
		Language:      b.Language,
		PageCount:     b.PageCount,
		PublishedYear: b.PublishedYear,
		Price:         money.ToDecimal(b.Price),
		CoverURL:      b.CoverURL,
		IsAvailable:   b.IsAvailable,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toListItem(b *book.Book, _ int) *BookListItem {
	return &BookListItem{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		Publisher:   b.Publisher,
		Genre:       b.Genre,
		Price:       money.ToDecimal(b.Price),
		CoverURL:    b.CoverURL,
		IsAvailable: b.IsAvailable,
		CreatedAt:   b.CreatedAt,
	}
}
