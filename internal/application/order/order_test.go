package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apporder "github.com/xiebiao/leafside/internal/application/order"
	"github.com/xiebiao/leafside/internal/application/event"
	"github.com/xiebiao/leafside/internal/domain/book"
	bookmocks "github.com/xiebiao/leafside/internal/domain/book/mocks"
	"github.com/xiebiao/leafside/internal/domain/cart"
	cartmocks "github.com/xiebiao/leafside/internal/domain/cart/mocks"
	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/order/mocks"
	"github.com/xiebiao/leafside/internal/domain/user"
	usermocks "github.com/xiebiao/leafside/internal/domain/user/mocks"
)

// fakeTx 直接执行fn，记录是否回滚
type fakeTx struct {
	rolledBack bool
}

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	f.rolledBack = err != nil
	return err
}

type published struct {
	key     string
	payload interface{}
}

type recordingPublisher struct {
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload interface{}) error {
	p.events = append(p.events, published{key, payload})
	return nil
}

type fixture struct {
	orders *mocks.MockRepository
	books  *bookmocks.MockRepository
	carts  *cartmocks.MockRepository
	users  *usermocks.MockRepository
	tx     *fakeTx
	pub    *recordingPublisher
	uc     *apporder.CreateOrderUseCase
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		orders: mocks.NewMockRepository(ctrl),
		books:  bookmocks.NewMockRepository(ctrl),
		carts:  cartmocks.NewMockRepository(ctrl),
		users:  usermocks.NewMockRepository(ctrl),
		tx:     &fakeTx{},
		pub:    &recordingPublisher{},
	}
	f.uc = apporder.NewCreateOrderUseCase(f.orders, f.books, f.carts, f.users, f.tx, f.pub)
	return f
}

func (f *fixture) expectCreate() *gomock.Call {
	return f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *order.Order) error {
		o.ID = 100
		return nil
	})
}

var buyer = &user.User{ID: 1, Email: "reader@example.com", FirstName: "San", LastName: "Zhang", PhoneNumber: "13800000000"}

func TestCreateOrder_Direct(t *testing.T) {
	f := newFixture(t)

	f.books.EXPECT().LockByID(gomock.Any(), uint(2)).Return(&book.Book{ID: 2, Title: "Go", Price: 1000}, nil)
	f.books.EXPECT().LockByID(gomock.Any(), uint(3)).Return(&book.Book{ID: 3, Title: "Rust", Price: 2550}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(buyer, nil)
	f.expectCreate()

	resp, err := f.uc.Execute(context.Background(), apporder.CreateOrderRequest{
		UserID: 1,
		Items: []apporder.CreateOrderItem{
			{BookID: 2, Quantity: 1},
			{BookID: 3, Quantity: 2},
			{BookID: 2, Quantity: 1},
		},
		ExpectedTotal: decimal.RequireFromString("71.00"),
		Shipping:      apporder.ShippingRequest{ShippingAddress: "北京市海淀区"},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(100), resp.ID)
	assert.Equal(t, "71", resp.Total.String())
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "San Zhang", resp.CustomerName)
	assert.Equal(t, "reader@example.com", resp.CustomerEmail)
	require.Len(t, resp.Items, 2, "同一本书合并为一行")
	assert.Equal(t, 2, resp.Items[0].Quantity)

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, event.OrderCreated, f.pub.events[0].key)
	payload := f.pub.events[0].payload.(event.OrderCreatedPayload)
	assert.Equal(t, apporder.SourceDirect, payload.Source)
	assert.Equal(t, "71.00", payload.Total)
}

func TestCreateOrder_TotalWithinTolerance(t *testing.T) {
	f := newFixture(t)

	f.books.EXPECT().LockByID(gomock.Any(), uint(2)).Return(&book.Book{ID: 2, Price: 1000}, nil)
	f.expectCreate()

	_, err := f.uc.Execute(context.Background(), apporder.CreateOrderRequest{
		UserID:        1,
		Items:         []apporder.CreateOrderItem{{BookID: 2, Quantity: 1}},
		ExpectedTotal: decimal.RequireFromString("10.01"),
		Shipping: apporder.ShippingRequest{
			CustomerName: "Li", CustomerEmail: "li@example.com", CustomerPhone: "1",
		},
	})
	assert.NoError(t, err)
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	f := newFixture(t)

	f.books.EXPECT().LockByID(gomock.Any(), uint(2)).Return(&book.Book{ID: 2, Price: 1000}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(buyer, nil)

	_, err := f.uc.Execute(context.Background(), apporder.CreateOrderRequest{
		UserID:        1,
		Items:         []apporder.CreateOrderItem{{BookID: 2, Quantity: 1}},
		ExpectedTotal: decimal.RequireFromString("9.98"),
	})
	assert.ErrorIs(t, err, order.ErrTotalMismatch)
	assert.True(t, f.tx.rolledBack)
	assert.Empty(t, f.pub.events)
}

func TestCreateOrder_InvalidItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, apporder.CreateOrderRequest{UserID: 1})
	assert.ErrorIs(t, err, order.ErrInvalidOrderItems)

	_, err = f.uc.Execute(ctx, apporder.CreateOrderRequest{
		UserID: 1,
		Items:  []apporder.CreateOrderItem{{BookID: 2, Quantity: 0}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)
}

func TestCreateOrder_UnknownBook(t *testing.T) {
	f := newFixture(t)
	f.books.EXPECT().LockByID(gomock.Any(), uint(9)).Return(nil, book.ErrBookNotFound)

	_, err := f.uc.Execute(context.Background(), apporder.CreateOrderRequest{
		UserID: 1,
		Items:  []apporder.CreateOrderItem{{BookID: 9, Quantity: 1}},
	})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)

	c := &cart.Cart{ID: 5, UserID: 1, Items: []*cart.Item{
		{BookID: 2, Quantity: 2, PriceSnapshot: lo.ToPtr(int64(1000))},
	}}
	f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(c, nil)
	// 加入购物车后改过价，按快照计算
	f.books.EXPECT().FindByIDs(gomock.Any(), []uint{2}).Return([]*book.Book{{ID: 2, Title: "B", Price: 1500}}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(buyer, nil)
	gomock.InOrder(
		f.expectCreate(),
		f.carts.EXPECT().ClearItems(gomock.Any(), uint(5)).Return(int64(1), nil),
	)

	resp, err := f.uc.Checkout(context.Background(), apporder.CheckoutRequest{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "20", resp.Total.String())
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "B", resp.Items[0].BookTitle)
	assert.Equal(t, "10", resp.Items[0].UnitPrice.String())

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, apporder.SourceCart, f.pub.events[0].payload.(event.OrderCreatedPayload).Source)
}

func TestCheckout_SkipsDeletedBooks(t *testing.T) {
	f := newFixture(t)

	c := &cart.Cart{ID: 5, UserID: 1, Items: []*cart.Item{
		{BookID: 2, Quantity: 1},
		{BookID: 3, Quantity: 1},
	}}
	f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(c, nil)
	f.books.EXPECT().FindByIDs(gomock.Any(), []uint{2, 3}).Return([]*book.Book{{ID: 3, Title: "C", Price: 800}}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(buyer, nil)
	f.expectCreate()
	f.carts.EXPECT().ClearItems(gomock.Any(), uint(5)).Return(int64(2), nil)

	resp, err := f.uc.Checkout(context.Background(), apporder.CheckoutRequest{UserID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "8", resp.Total.String())
}

func TestCheckout_Empty(t *testing.T) {
	ctx := context.Background()

	t.Run("没有购物车", func(t *testing.T) {
		f := newFixture(t)
		f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(nil, cart.ErrCartNotFound)

		_, err := f.uc.Checkout(ctx, apporder.CheckoutRequest{UserID: 1})
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
	})

	t.Run("购物车为空", func(t *testing.T) {
		f := newFixture(t)
		f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(cart.NewCart(1), nil)

		_, err := f.uc.Checkout(ctx, apporder.CheckoutRequest{UserID: 1})
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
	})

	t.Run("图书都已删除", func(t *testing.T) {
		f := newFixture(t)
		c := &cart.Cart{ID: 5, UserID: 1, Items: []*cart.Item{{BookID: 2, Quantity: 1}}}
		f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(c, nil)
		f.books.EXPECT().FindByIDs(gomock.Any(), []uint{2}).Return(nil, nil)

		_, err := f.uc.Checkout(ctx, apporder.CheckoutRequest{UserID: 1})
		assert.ErrorIs(t, err, order.ErrNoPurchasableItems)
	})
}

func TestCheckout_CartClearedConcurrently(t *testing.T) {
	f := newFixture(t)

	c := &cart.Cart{ID: 5, UserID: 1, Items: []*cart.Item{
		{BookID: 2, Quantity: 1},
		{BookID: 3, Quantity: 1},
	}}
	f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(c, nil)
	f.books.EXPECT().FindByIDs(gomock.Any(), []uint{2, 3}).
		Return([]*book.Book{{ID: 2, Price: 100}, {ID: 3, Price: 200}}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(buyer, nil)
	f.expectCreate()
	// 另一个结算已经清空了条目
	f.carts.EXPECT().ClearItems(gomock.Any(), uint(5)).Return(int64(0), nil)

	_, err := f.uc.Checkout(context.Background(), apporder.CheckoutRequest{UserID: 1})
	assert.ErrorIs(t, err, cart.ErrCartEmpty)
	assert.True(t, f.tx.rolledBack, "订单随事务回滚")
	assert.Empty(t, f.pub.events)
}

func TestCheckout_CreateFailsKeepsCart(t *testing.T) {
	f := newFixture(t)

	c := &cart.Cart{ID: 5, UserID: 1, Items: []*cart.Item{{BookID: 2, Quantity: 1}}}
	f.carts.EXPECT().LockByUserID(gomock.Any(), uint(1)).Return(c, nil)
	f.books.EXPECT().FindByIDs(gomock.Any(), []uint{2}).Return([]*book.Book{{ID: 2, Price: 100}}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(buyer, nil)
	f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	// 不会调用ClearItems

	_, err := f.uc.Checkout(context.Background(), apporder.CheckoutRequest{UserID: 1})
	assert.Error(t, err)
	assert.True(t, f.tx.rolledBack)
	assert.Empty(t, f.pub.events)
}

func TestMyOrdersUseCase_ConfirmDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	pub := &recordingPublisher{}
	uc := apporder.NewMyOrdersUseCase(svc, pub)
	ctx := context.Background()

	svc.EXPECT().ConfirmDelivery(ctx, uint(1), uint(8)).
		Return(&order.Order{ID: 8, UserID: 1, Status: order.StatusDelivered}, order.StatusShipped, nil)

	resp, err := uc.ConfirmDelivery(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, "Delivered", resp.Status)

	require.Len(t, pub.events, 1)
	payload := pub.events[0].payload.(event.OrderStatusChangedPayload)
	assert.Equal(t, "Shipped", payload.From)
	assert.Equal(t, "Delivered", payload.To)

	svc.EXPECT().ConfirmDelivery(ctx, uint(2), uint(8)).Return(nil, order.StatusShipped, order.ErrNotOrderOwner)
	_, err = uc.ConfirmDelivery(ctx, 2, 8)
	assert.ErrorIs(t, err, order.ErrNotOrderOwner)
	assert.Len(t, pub.events, 1)
}

func TestMyOrdersUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := apporder.NewMyOrdersUseCase(svc, &recordingPublisher{})
	ctx := context.Background()

	svc.EXPECT().ListForUser(ctx, uint(1), 1, 100).Return([]*order.Order{{ID: 1, Status: order.StatusPending}}, int64(1), nil)

	page, err := uc.List(ctx, 1, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, page.PageSize)
	assert.Len(t, page.List, 1)
}

func TestAdminOrdersUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	pub := &recordingPublisher{}
	uc := apporder.NewAdminOrdersUseCase(svc, pub)
	ctx := context.Background()

	svc.EXPECT().List(ctx, order.ListParams{Page: 1, PageSize: 20, Status: order.StatusShipped}).Return(nil, int64(0), nil)
	page, err := uc.List(ctx, apporder.ListOrdersRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.NotNil(t, page.List)

	_, err = uc.List(ctx, apporder.ListOrdersRequest{Status: "lost"})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	svc.EXPECT().UpdateStatus(ctx, uint(3), order.StatusCancelled).
		Return(&order.Order{ID: 3, Status: order.StatusCancelled}, order.StatusProcessing, nil)
	resp, err := uc.UpdateStatus(ctx, 3, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", resp.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, event.OrderStatusChanged, pub.events[0].key)

	svc.EXPECT().UpdateStatus(ctx, uint(4), order.StatusPending).
		Return(nil, order.StatusDelivered, order.ErrInvalidStatusTransition)
	_, err = uc.UpdateStatus(ctx, 4, "Pending")
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

	svc.EXPECT().Delete(ctx, uint(3)).Return(nil)
	assert.NoError(t, uc.Delete(ctx, 3))
}
