package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastPageIndex(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{0, 0},
		{1, 0},
		{4, 0},
		{5, 0},
		{6, 1},
		{10, 1},
		{11, 2},
		{99, 19},
		{100, 19},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LastPageIndex(tt.n), "n=%d", tt.n)
	}
}

func TestNextPrevClamp(t *testing.T) {
	t.Run("next stops at last page", func(t *testing.T) {
		page := 0
		for i := 0; i < 10; i++ {
			page = Next(page, 7)
		}
		assert.Equal(t, 1, page)
	})

	t.Run("prev stops at zero", func(t *testing.T) {
		page := 1
		for i := 0; i < 10; i++ {
			page = Prev(page)
		}
		assert.Equal(t, 0, page)
	})

	t.Run("empty list pins to page zero", func(t *testing.T) {
		assert.Equal(t, 0, Next(0, 0))
		assert.Equal(t, 0, Prev(0))
	})
}

func TestPageStaysInBounds(t *testing.T) {
	// Arbitrary next/prev walks must never leave [0, LastPageIndex(n)].
	for _, n := range []int{0, 1, 5, 7, 23, 100} {
		page := 0
		steps := []string{"next", "next", "prev", "next", "prev", "prev", "next", "next", "next"}
		for _, step := range steps {
			if step == "next" {
				page = Next(page, n)
			} else {
				page = Prev(page)
			}
			assert.GreaterOrEqual(t, page, 0)
			assert.LessOrEqual(t, page, LastPageIndex(n))
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		page, n    int
		start, end int
	}{
		{"first full page", 0, 7, 0, 5},
		{"short last page", 1, 7, 5, 7},
		{"exact boundary", 1, 10, 5, 10},
		{"empty list", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.page, tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
