package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/leafside/internal/domain/book"
	bookmocks "github.com/xiebiao/leafside/internal/domain/book/mocks"
	"github.com/xiebiao/leafside/internal/domain/cart"
	"github.com/xiebiao/leafside/internal/domain/cart/mocks"
)

type fixture struct {
	repo  *mocks.MockRepository
	books *bookmocks.MockRepository
	svc   cart.Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:  mocks.NewMockRepository(ctrl),
		books: bookmocks.NewMockRepository(ctrl),
	}
	f.svc = cart.NewService(f.repo, f.books)
	return f
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.repo.EXPECT().FindByUserID(ctx, uint(1)).Return(nil, cart.ErrCartNotFound)
	f.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *cart.Cart) error {
		c.ID = 10
		return nil
	})

	c, err := f.svc.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(10), c.ID)
	assert.True(t, c.IsEmpty())
}

func TestAddOrUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("空购物车加入图书生成价格快照", func(t *testing.T) {
		f := newFixture(t)
		f.books.EXPECT().FindByID(ctx, uint(5)).Return(&book.Book{ID: 5, Price: 1000}, nil)
		f.repo.EXPECT().FindByUserID(ctx, uint(1)).Return(&cart.Cart{ID: 10, UserID: 1}, nil)
		f.repo.EXPECT().SaveItem(ctx, gomock.Any()).Return(nil)

		c, err := f.svc.AddOrUpdateItem(ctx, 1, 5, 2)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		require.NotNil(t, c.Items[0].PriceSnapshot)
		assert.Equal(t, int64(1000), *c.Items[0].PriceSnapshot)
		assert.Equal(t, uint(10), c.Items[0].CartID)
	})

	t.Run("已有条目只改数量保留快照", func(t *testing.T) {
		f := newFixture(t)
		old := int64(800)
		existing := &cart.Item{ID: 3, CartID: 10, BookID: 5, Quantity: 1, PriceSnapshot: &old}
		f.books.EXPECT().FindByID(ctx, uint(5)).Return(&book.Book{ID: 5, Price: 1200}, nil)
		f.repo.EXPECT().FindByUserID(ctx, uint(1)).Return(&cart.Cart{ID: 10, UserID: 1, Items: []*cart.Item{existing}}, nil)
		f.repo.EXPECT().SaveItem(ctx, existing).Return(nil)

		c, err := f.svc.AddOrUpdateItem(ctx, 1, 5, 4)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 4, existing.Quantity)
		assert.Equal(t, int64(800), *existing.PriceSnapshot)
	})

	t.Run("数量小于1", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.AddOrUpdateItem(ctx, 1, 5, 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})

	t.Run("图书不存在", func(t *testing.T) {
		f := newFixture(t)
		f.books.EXPECT().FindByID(ctx, uint(99)).Return(nil, book.ErrBookNotFound)
		_, err := f.svc.AddOrUpdateItem(ctx, 1, 99, 1)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("没有购物车时返回false", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().FindByUserID(ctx, uint(1)).Return(nil, cart.ErrCartNotFound).Times(2)

		removed, err := f.svc.RemoveItem(ctx, 1, 5)
		require.NoError(t, err)
		assert.False(t, removed)

		cleared, err := f.svc.Clear(ctx, 1)
		require.NoError(t, err)
		assert.False(t, cleared)
	})

	t.Run("条目不存在时返回false", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().FindByUserID(ctx, uint(1)).Return(&cart.Cart{ID: 10}, nil)
		f.repo.EXPECT().DeleteItem(ctx, uint(10), uint(5)).Return(false, nil)

		removed, err := f.svc.RemoveItem(ctx, 1, 5)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("清空非空购物车", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().FindByUserID(ctx, uint(1)).Return(&cart.Cart{ID: 10}, nil)
		f.repo.EXPECT().ClearItems(ctx, uint(10)).Return(int64(3), nil)

		cleared, err := f.svc.Clear(ctx, 1)
		require.NoError(t, err)
		assert.True(t, cleared)
	})
}

func TestItemUnitPrice(t *testing.T) {
	snap := int64(1000)
	live := int64(1500)

	assert.Equal(t, int64(1000), (&cart.Item{PriceSnapshot: &snap}).UnitPrice(&live))
	assert.Equal(t, int64(1500), (&cart.Item{}).UnitPrice(&live))
	assert.Equal(t, int64(0), (&cart.Item{}).UnitPrice(nil))
}
