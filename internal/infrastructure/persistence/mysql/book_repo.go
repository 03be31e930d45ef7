package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/leafside/internal/domain/book"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

// bookRepository 图书仓储实现（MySQL）
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create ISBN唯一性由UNIQUE索引兜底
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查询，不存在的ID直接忽略，调用方按需比对
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除，历史订单里的书名和单价是快照，不受影响
// 同时清空ISBN释放唯一索引，之后可以用相同ISBN重新录入
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"isbn": nil, "deleted_at": time.Now()})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 关键词搜索标题、作者、出版社，支持分类、作者、在售过滤和排序
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})

	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		like := "%" + kw + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR publisher LIKE ?", like, like, like)
	}
	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}
	if params.Author != "" {
		query = query.Where("author LIKE ?", "%"+params.Author+"%")
	}
	if params.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计图书数量失败")
	}

	switch params.SortBy {
	case book.SortPriceAsc:
		query = query.Order("price ASC")
	case book.SortPriceDesc:
		query = query.Order("price DESC")
	case book.SortTitleAsc:
		query = query.Order("title ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var models []BookModel
	if err := query.Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// LockByID SELECT ... FOR UPDATE，必须在事务中调用
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

func toBookEntity(m *BookModel) *book.Book {
	b := &book.Book{
		ID:            m.ID,
		Title:         m.Title,
		Author:        m.Author,
		Publisher:     m.Publisher,
		Description:   m.Description,
		Genre:         m.Genre,
		Language:      m.Language,
		PageCount:     m.PageCount,
		PublishedYear: m.PublishedYear,
		Price:         m.Price,
		CoverURL:      m.CoverURL,
		IsAvailable:   m.IsAvailable,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.ISBN != nil {
		b.ISBN = *m.ISBN
	}
	return b
}

func toBookModel(b *book.Book) *BookModel {
	m := &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		Description:   b.Description,
		Genre:         b.Genre,
		Language:      b.Language,
		PageCount:     b.PageCount,
		PublishedYear: b.PublishedYear,
		Price:         b.Price,
		CoverURL:      b.CoverURL,
		IsAvailable:   b.IsAvailable,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.ISBN != "" {
		isbn := b.ISBN
		m.ISBN = &isbn
	}
	return m
}
