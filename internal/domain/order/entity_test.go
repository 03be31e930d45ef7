package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_Total(t *testing.T) {
	items := []Item{
		NewItem(1, "Go", 2, 1000),
		NewItem(2, "Rust", 1, 2550),
	}
	o := NewOrder(GenerateOrderNo(), 9, items, ShippingInfo{CustomerName: "Ada"})

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(4550), o.Total)
	assert.Equal(t, int64(2000), o.Items[0].TotalPrice)
	assert.Equal(t, 3, o.TotalQuantity())
	assert.Regexp(t, `^ORD\d{16}$`, o.OrderNo)
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusShipped, StatusProcessing, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			o := &Order{Status: tt.from}
			err := o.TransitionTo(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, o.Status)
			}
		})
	}
}

func TestConfirmDelivery(t *testing.T) {
	for _, s := range AllStatuses {
		t.Run(s.String(), func(t *testing.T) {
			o := &Order{UserID: 1, Status: s}
			err := o.ConfirmDelivery(1)
			if s == StatusPending || s == StatusShipped {
				require.NoError(t, err)
				assert.Equal(t, StatusDelivered, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			}
		})
	}

	o := &Order{UserID: 1, Status: StatusShipped}
	assert.ErrorIs(t, o.ConfirmDelivery(2), ErrNotOrderOwner)
	assert.Equal(t, StatusShipped, o.Status)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
