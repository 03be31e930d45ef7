package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name             string
		page, size       int
		wantPage, wantSz int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative", -3, -1, 1, 20},
		{"capped", 2, 500, 2, 100},
		{"unchanged", 3, 15, 3, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := NormalizePage(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantSz, s)
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.NotNil(t, p.List)

	assert.Equal(t, 0, NewPage([]int{}, 0, 1, 20).TotalPages)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), "order.created", nil))
}
