package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderRange(t *testing.T) {
	t.Parallel()

	r := RenderRange(300, 300, 500)
	assert.Equal(t, Range{Top: -300, Bottom: 800}, r)
	assert.Equal(t, 1100, r.Height())

	shifted := r.Offset(1000)
	assert.Equal(t, Range{Top: 700, Bottom: 1800}, shifted)
	assert.Equal(t, Range{Top: 1000, Bottom: 1000}, shifted.Sub(r))
}

func TestRangeIntersects(t *testing.T) {
	t.Parallel()

	r := Range{Top: 100, Bottom: 200}
	tests := []struct {
		name        string
		top, bottom int
		want        bool
	}{
		{"fully inside", 120, 150, true},
		{"ends at top edge", 50, 100, false},
		{"starts at bottom edge", 200, 250, false},
		{"straddles top", 90, 101, true},
		{"straddles bottom", 199, 260, true},
		{"covers range", 0, 1000, true},
		{"empty item at top", 100, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.Intersects(tt.top, tt.bottom))
		})
	}
}

func TestIndexRange(t *testing.T) {
	t.Parallel()

	r := IndexRange{First: 3, Last: 7}
	assert.Equal(t, 5, r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(8))
	assert.True(t, r.Equal(IndexRange{First: 3, Last: 7}))
	assert.False(t, r.Equal(IndexRange{First: 3, Last: 8}))
	assert.Equal(t, "[3..7]", r.String())
	assert.Equal(t, 0, IndexRange{First: 4, Last: 2}.Len())
}
