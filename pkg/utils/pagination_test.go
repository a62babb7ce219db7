package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	t.Run("Offset is zero-based from one-based pages", func(t *testing.T) {
		p := Pagination{Page: 1, Limit: 10}
		assert.Equal(t, 0, p.Offset())

		p = Pagination{Page: 3, Limit: 20}
		assert.Equal(t, 40, p.Offset())
	})

	t.Run("Page zero and oversized limits are invalid", func(t *testing.T) {
		assert.False(t, (&Pagination{Page: 0, Limit: 10}).Valid())
		assert.False(t, (&Pagination{Page: -1, Limit: 10}).Valid())
		assert.False(t, (&Pagination{Page: 1, Limit: 0}).Valid())
		assert.False(t, (&Pagination{Page: 1, Limit: 101}).Valid())
		assert.True(t, (&Pagination{Page: 1, Limit: 100}).Valid())
	})
}

func TestNewPageResult(t *testing.T) {
	t.Run("Middle page has both neighbours", func(t *testing.T) {
		r := NewPageResult(nil, 25, 2, 10)
		assert.Equal(t, 3, r.TotalPages)
		assert.True(t, r.HasNextPage)
		assert.True(t, r.HasPreviousPage)
	})

	t.Run("Exact multiple has no extra page", func(t *testing.T) {
		r := NewPageResult(nil, 20, 2, 10)
		assert.Equal(t, 2, r.TotalPages)
		assert.False(t, r.HasNextPage)
	})

	t.Run("Empty result has zero pages", func(t *testing.T) {
		r := NewPageResult(nil, 0, 1, 10)
		assert.Equal(t, 0, r.TotalPages)
		assert.False(t, r.HasNextPage)
		assert.False(t, r.HasPreviousPage)
	})
}
