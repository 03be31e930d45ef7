package book_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	appbook "github.com/xiebiao/leafside/internal/application/book"
	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/book/mocks"
)

func TestListBooksUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appbook.NewListBooksUseCase(svc)

	svc.EXPECT().ListBooks(gomock.Any(), book.ListParams{
		Page: 1, PageSize: 20, Keyword: "go", SortBy: book.SortPriceAsc,
	}).Return([]*book.Book{{ID: 1, Title: "Go", Price: 1050, Description: "long"}}, int64(21), nil)

	page, err := uc.Execute(context.Background(), appbook.ListBooksRequest{Keyword: "go", SortBy: book.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.List, 1)
	assert.Equal(t, "10.5", page.List[0].Price.String())
}

func TestListBooksUseCase_GetPriceAsNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appbook.NewListBooksUseCase(svc)

	svc.EXPECT().GetBook(gomock.Any(), uint(3)).Return(&book.Book{ID: 3, Title: "三体", Price: 4599}, nil)

	resp, err := uc.Get(context.Background(), 3)
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":45.99`)
}

func TestManageBookUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appbook.NewManageBookUseCase(svc)
	ctx := context.Background()

	req := appbook.BookRequest{ISBN: "978-7-111-11111-1", Title: "Go", Author: "Rob", Price: 1000, IsAvailable: true}

	svc.EXPECT().CreateBook(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a book.Attributes) (*book.Book, error) {
		assert.Equal(t, int64(1000), a.Price)
		return book.NewBook(a), nil
	})
	created, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "9787111111111", created.ISBN)

	svc.EXPECT().UpdateBook(gomock.Any(), uint(9), gomock.Any()).Return(nil, book.ErrBookNotFound)
	_, err = uc.Update(ctx, 9, req)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	svc.EXPECT().DeleteBook(ctx, uint(9)).Return(nil)
	assert.NoError(t, uc.Delete(ctx, 9))
}
