package book

import (
	"strings"
	"time"
)

// Book 图书实体（聚合根）
// 价格使用int64存储分，ISBN非空时全局唯一（数据库层保证）
type Book struct {
	ID            uint
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	Description   string
	Genre         string
	Language      string
	PageCount     int
	PublishedYear int
	Price         int64 // 分
	CoverURL      string
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Attributes 创建或更新图书时的完整属性
type Attributes struct {
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

// NewBook 创建新图书（工厂方法，调用方先做校验）
func NewBook(attrs Attributes) *Book {
	now := time.Now()
	b := &Book{CreatedAt: now}
	b.apply(attrs, now)
	return b
}

// Update 覆盖图书属性
func (b *Book) Update(attrs Attributes) {
	b.apply(attrs, time.Now())
}

func (b *Book) apply(a Attributes, now time.Time) {
	b.ISBN = normalizeISBN(a.ISBN)
	b.Title = strings.TrimSpace(a.Title)
	b.Author = strings.TrimSpace(a.Author)
	b.Publisher = strings.TrimSpace(a.Publisher)
	b.Description = a.Description
	b.Genre = strings.TrimSpace(a.Genre)
	b.Language = strings.TrimSpace(a.Language)
	b.PageCount = a.PageCount
	b.PublishedYear = a.PublishedYear
	b.Price = a.Price
	b.CoverURL = a.CoverURL
	b.IsAvailable = a.IsAvailable
	b.UpdatedAt = now
}

// normalizeISBN 去掉分隔符（978-7-115-42802-8 → 9787115428028）
func normalizeISBN(isbn string) string {
	var sb strings.Builder
	for _, r := range isbn {
		if (r >= '0' && r <= '9') || r == 'X' || r == 'x' {
			sb.WriteRune(r)
		}
	}
	return strings.ToUpper(sb.String())
}
