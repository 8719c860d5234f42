package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	p := Paginate(all, Filter{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, p.Items)
	assert.Equal(t, int64(5), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	last := Paginate(all, Filter{Page: 3, PageSize: 2})
	assert.Equal(t, []int{5}, last.Items)

	past := Paginate(all, Filter{Page: 9, PageSize: 2})
	assert.Empty(t, past.Items)

	defaults := Paginate(all, Filter{})
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, 20, defaults.PageSize)
	assert.Len(t, defaults.Items, 5)
}
