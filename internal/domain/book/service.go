package book

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/leafside/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Service 图书领域服务
// 写操作只对管理员开放，权限在接口层的RequireRole中间件校验
type Service interface {
	CreateBook(ctx context.Context, attrs Attributes) (*Book, error)
	GetBook(ctx context.Context, id uint) (*Book, error)
	UpdateBook(ctx context.Context, id uint, attrs Attributes) (*Book, error)
	DeleteBook(ctx context.Context, id uint) error
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

type service struct {
	repo  Repository
	cache Cache
}

// NewService 创建图书领域服务，cache为nil时不使用缓存
func NewService(repo Repository, cache Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) CreateBook(ctx context.Context, attrs Attributes) (*Book, error) {
	if err := ValidateAttributes(attrs); err != nil {
		return nil, err
	}

	b := NewBook(attrs)
	if b.ISBN != "" {
		existing, err := s.repo.FindByISBN(ctx, b.ISBN)
		if err == nil && existing != nil {
			return nil, ErrISBNDuplicate
		}
		if err != nil && !errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBook 先查缓存，未命中再查数据库并回填；缓存故障只记日志
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.FromContext(ctx).Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, b); err != nil {
			logger.FromContext(ctx).Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
		}
	}
	return b, nil
}

func (s *service) UpdateBook(ctx context.Context, id uint, attrs Attributes) (*Book, error) {
	if err := ValidateAttributes(attrs); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if isbn := normalizeISBN(attrs.ISBN); isbn != "" && isbn != b.ISBN {
		existing, err := s.repo.FindByISBN(ctx, isbn)
		if err == nil && existing != nil && existing.ID != id {
			return nil, ErrISBNDuplicate
		}
		if err != nil && !errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
	}

	b.Update(attrs)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return b, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// invalidate 更新数据库后删除缓存，下次读取时重新加载
func (s *service) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

// ValidateAttributes 图书属性校验
func ValidateAttributes(a Attributes) error {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Author) == "" {
		return ErrTitleRequired
	}
	if a.Price < 0 {
		return ErrInvalidPrice
	}
	if a.PageCount < 0 {
		return ErrInvalidPages
	}
	if a.ISBN != "" && !IsValidISBN(a.ISBN) {
		return ErrInvalidISBN
	}
	return nil
}

// IsValidISBN ISBN-10（末位可为X）或ISBN-13，允许连字符和空格
// 只检查位数，不校验校验位
func IsValidISBN(isbn string) bool {
	for _, r := range isbn {
		if !(r >= '0' && r <= '9') && r != 'X' && r != 'x' && r != '-' && r != ' ' {
			return false
		}
	}
	clean := normalizeISBN(isbn)
	switch len(clean) {
	case 10:
		return !strings.Contains(clean[:9], "X")
	case 13:
		return !strings.Contains(clean, "X")
	default:
		return false
	}
}
