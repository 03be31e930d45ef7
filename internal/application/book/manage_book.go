package book

import (
	"context"

	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/pkg/tracing"
)

// ManageBookUseCase 管理员新增、修改、删除图书
// 校验规则（书名作者必填、价格和页数非负、ISBN格式和唯一）由领域服务负责
type ManageBookUseCase struct {
	bookService book.Service
}

func NewManageBookUseCase(bookService book.Service) *ManageBookUseCase {
	return &ManageBookUseCase{bookService: bookService}
}

func (uc *ManageBookUseCase) Create(ctx context.Context, req BookRequest) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "ManageBookUseCase.Create")
	defer span.End()

	b, err := uc.bookService.CreateBook(ctx, req.attributes())
	if err != nil {
		return nil, err
	}
	return ToBookResponse(b), nil
}

// Update 整体替换图书属性，成功后删除详情缓存
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, req BookRequest) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "ManageBookUseCase.Update")
	defer span.End()

	b, err := uc.bookService.UpdateBook(ctx, id, req.attributes())
	if err != nil {
		return nil, err
	}
	return ToBookResponse(b), nil
}

func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}
