package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/order/mocks"
)

func TestService_ConfirmDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("本人确认收货", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		o := &order.Order{ID: 1, UserID: 3, Status: order.StatusShipped}
		repo.EXPECT().FindByID(ctx, uint(1)).Return(o, nil)
		repo.EXPECT().UpdateStatus(ctx, o).Return(nil)

		got, prev, err := order.NewService(repo).ConfirmDelivery(ctx, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, prev)
		assert.Equal(t, order.StatusDelivered, got.Status)
	})

	t.Run("他人订单", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(ctx, uint(1)).Return(&order.Order{ID: 1, UserID: 3, Status: order.StatusShipped}, nil)

		_, _, err := order.NewService(repo).ConfirmDelivery(ctx, 4, 1)
		assert.ErrorIs(t, err, order.ErrNotOrderOwner)
	})

	t.Run("处理中不能确认", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(ctx, uint(1)).Return(&order.Order{ID: 1, UserID: 3, Status: order.StatusProcessing}, nil)

		_, _, err := order.NewService(repo).ConfirmDelivery(ctx, 3, 1)
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	o := &order.Order{ID: 1, Status: order.StatusPending}
	repo.EXPECT().FindByID(ctx, uint(1)).Return(o, nil)
	repo.EXPECT().UpdateStatus(ctx, o).Return(nil)

	got, prev, err := order.NewService(repo).UpdateStatus(ctx, 1, order.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, prev)
	assert.Equal(t, order.StatusProcessing, got.Status)
}

func TestService_GetForUser(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().FindByID(ctx, uint(1)).Return(&order.Order{ID: 1, UserID: 3}, nil).Times(2)

	svc := order.NewService(repo)
	_, err := svc.GetForUser(ctx, 3, 1)
	assert.NoError(t, err)

	_, err = svc.GetForUser(ctx, 5, 1)
	assert.ErrorIs(t, err, order.ErrNotOrderOwner)
}
