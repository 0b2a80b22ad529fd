package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/pagination"
)

func TestPaginator_PageCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, size, want int
	}{
		{0, 9, 1},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{27, 9, 3},
		{28, 9, 4},
		{27, 0, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pagination.New(tt.total, tt.size).PageCount(), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaginator_Page(t *testing.T) {
	t.Parallel()

	t.Run("second page of 27 shows positions 9 to 17", func(t *testing.T) {
		t.Parallel()

		pg := pagination.New(27, pagination.DefaultPageSize).Page(2)
		assert.Equal(t, 9, pg.Start)
		assert.Equal(t, 18, pg.End)

		for i := range 27 {
			assert.Equal(t, i >= 9 && i <= 17, pg.Visible(i), "index %d", i)
		}
		assert.True(t, pg.HasPrev)
		assert.True(t, pg.HasNext)
		assert.Equal(t, 1, pg.Prev())
		assert.Equal(t, 3, pg.Next())
	})

	t.Run("bounds follow the item count", func(t *testing.T) {
		t.Parallel()

		p := pagination.New(28, 9)
		last := p.Page(4)
		assert.Equal(t, 27, last.Start)
		assert.Equal(t, 28, last.End)
		assert.True(t, last.HasPrev)
		assert.False(t, last.HasNext)
		assert.Equal(t, 4, last.Next())
		assert.Equal(t, []int{1, 2, 3, 4}, last.Numbers())
	})

	t.Run("out of range pages are clamped", func(t *testing.T) {
		t.Parallel()

		p := pagination.New(27, 9)
		assert.Equal(t, 1, p.Page(0).Number)
		assert.Equal(t, 1, p.Page(-5).Number)
		assert.Equal(t, 3, p.Page(99).Number)
		assert.False(t, p.Page(1).HasPrev)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		pg := pagination.New(0, 9).Page(1)
		assert.Equal(t, 0, pg.Start)
		assert.Equal(t, 0, pg.End)
		assert.False(t, pg.HasPrev)
		assert.False(t, pg.HasNext)
	})
}

func TestSlice(t *testing.T) {
	t.Parallel()

	items := make([]int, 27)
	for i := range items {
		items[i] = i
	}
	p := pagination.New(len(items), 9)

	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}, pagination.Slice(items, p.Page(2)))
	assert.Len(t, pagination.Slice(items, p.Page(3)), 9)
	assert.Empty(t, pagination.Slice([]int{}, pagination.New(0, 9).Page(1)))
}
