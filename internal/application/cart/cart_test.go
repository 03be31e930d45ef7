package cart_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	appcart "github.com/xiebiao/leafside/internal/application/cart"
	"github.com/xiebiao/leafside/internal/domain/book"
	bookmocks "github.com/xiebiao/leafside/internal/domain/book/mocks"
	"github.com/xiebiao/leafside/internal/domain/cart"
	"github.com/xiebiao/leafside/internal/domain/cart/mocks"
)

func TestCartUseCase_AddItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	books := bookmocks.NewMockRepository(ctrl)
	uc := appcart.NewCartUseCase(svc, books)

	c := cart.NewCart(1)
	c.ID = 7
	c.Items = []*cart.Item{cart.NewItem(7, 2, 2, 1000)}

	svc.EXPECT().AddOrUpdateItem(gomock.Any(), uint(1), uint(2), 2).Return(c, nil)
	books.EXPECT().FindByIDs(gomock.Any(), []uint{2}).
		Return([]*book.Book{{ID: 2, Title: "Go", Price: 1200, IsAvailable: true}}, nil)

	v, err := uc.AddItem(context.Background(), 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)

	item := v.Items[0]
	assert.Equal(t, "Go", item.Title)
	assert.Equal(t, "10", item.UnitPrice.String(), "快照优先于当前价格")
	assert.Equal(t, "12", item.CurrentPrice.String())
	assert.Equal(t, "20", v.Total.String())
	assert.Equal(t, 2, v.TotalQuantity)
}

func TestCartUseCase_GetWithDeletedBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	books := bookmocks.NewMockRepository(ctrl)
	uc := appcart.NewCartUseCase(svc, books)

	c := cart.NewCart(1)
	c.Items = []*cart.Item{
		{BookID: 3, Quantity: 1},
		{BookID: 4, Quantity: 3},
	}

	svc.EXPECT().GetOrCreate(gomock.Any(), uint(1)).Return(c, nil)
	books.EXPECT().FindByIDs(gomock.Any(), []uint{3, 4}).
		Return([]*book.Book{{ID: 4, Title: "Rust", Price: 500}}, nil)

	v, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, v.Items, 2)

	assert.Nil(t, v.Items[0].CurrentPrice)
	assert.True(t, v.Items[0].UnitPrice.IsZero())
	assert.Equal(t, "15", v.Items[1].Subtotal.String())
	assert.Equal(t, "15", v.Total.String())
}

func TestCartUseCase_RemoveAndClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appcart.NewCartUseCase(svc, bookmocks.NewMockRepository(ctrl))
	ctx := context.Background()

	svc.EXPECT().RemoveItem(ctx, uint(1), uint(9)).Return(false, nil)
	svc.EXPECT().Clear(ctx, uint(1)).Return(true, nil)

	removed, err := uc.RemoveItem(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, removed)

	cleared, err := uc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.True(t, cleared)
}

func TestAdminCartUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	books := bookmocks.NewMockRepository(ctrl)
	uc := appcart.NewAdminCartUseCase(svc, books)
	ctx := context.Background()

	c := &cart.Cart{ID: 1, UserID: 5, Items: []*cart.Item{
		{BookID: 1, Quantity: 2, PriceSnapshot: lo.ToPtr(int64(300))},
		{BookID: 2, Quantity: 1},
	}}
	svc.EXPECT().ListCarts(ctx, 1, 20).Return([]*cart.Cart{c}, int64(1), nil)

	page, err := uc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, 2, page.List[0].ItemCount)
	assert.Equal(t, 3, page.List[0].TotalQuantity)

	svc.EXPECT().GetByUserID(ctx, uint(6)).Return(nil, cart.ErrCartNotFound)
	_, err = uc.GetByUser(ctx, 6)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}
