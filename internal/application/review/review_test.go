package review_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiebiao/leafside/internal/application/event"
	appreview "github.com/xiebiao/leafside/internal/application/review"
	"github.com/xiebiao/leafside/internal/domain/review"
	"github.com/xiebiao/leafside/internal/domain/review/mocks"
)

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ interface{}) error {
	p.keys = append(p.keys, key)
	return nil
}

func TestReviewUseCase_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	pub := &recordingPublisher{}
	uc := appreview.NewReviewUseCase(svc, pub)
	ctx := context.Background()

	svc.EXPECT().Create(ctx, uint(1), uint(2), 3, "不错").
		Return(&review.Review{ID: 10, UserID: 1, BookID: 2, Rating: 3, Comment: "不错"}, nil)

	resp, err := uc.Submit(ctx, 1, 2, 3, "不错")
	require.NoError(t, err)
	assert.False(t, resp.IsApproved)
	assert.Equal(t, []string{event.ReviewSubmitted}, pub.keys)

	svc.EXPECT().Create(ctx, uint(1), uint(2), 6, "").Return(nil, review.ErrInvalidRating)
	_, err = uc.Submit(ctx, 1, 2, 6, "")
	assert.ErrorIs(t, err, review.ErrInvalidRating)
	assert.Len(t, pub.keys, 1)
}

func TestReviewUseCase_Rating(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appreview.NewReviewUseCase(svc, &recordingPublisher{})
	ctx := context.Background()

	svc.EXPECT().Summary(ctx, uint(2), true).Return(&review.Rating{BookID: 2, Average: 4.3333333, Count: 3}, nil)

	r, err := uc.Rating(ctx, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 4.33, r.AverageRating)
	assert.Equal(t, int64(3), r.ReviewCount)
}

func TestReviewUseCase_ListByBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appreview.NewReviewUseCase(svc, &recordingPublisher{})
	ctx := context.Background()

	svc.EXPECT().ListByBook(ctx, uint(2), false).Return([]*review.Review{{ID: 1}, {ID: 2}}, nil)

	list, err := uc.ListByBook(ctx, 2, true)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestModerationUseCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	uc := appreview.NewModerationUseCase(svc)
	ctx := context.Background()

	svc.EXPECT().ListPending(ctx, 1, 20).Return([]*review.Review{{ID: 1}}, int64(1), nil)
	page, err := uc.ListPending(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	svc.EXPECT().Approve(ctx, uint(1)).Return(&review.Review{ID: 1, IsApproved: true}, nil)
	resp, err := uc.Approve(ctx, 1)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)

	svc.EXPECT().Reject(ctx, uint(2)).Return(review.ErrReviewNotFound)
	assert.ErrorIs(t, uc.Reject(ctx, 2), review.ErrReviewNotFound)
}
