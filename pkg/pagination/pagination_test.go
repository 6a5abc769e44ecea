package pagination_test

import (
	"testing"

	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNewParams(t *testing.T) {
	p := pagination.NewParams(0, 500)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())

	p = pagination.NewParams(3, 20)
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := pagination.NewPagination(2, 10, 35)

	assert.Equal(t, 4, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := pagination.NewPagination(4, 10, 35)
	assert.False(t, last.HasNext)
}

func TestNewPaginatedResult_NilItems(t *testing.T) {
	result := pagination.NewPaginatedResult[int](nil, pagination.NewPagination(1, 15, 0))

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}
