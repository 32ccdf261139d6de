package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 45)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 45, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPaginationOffset(t *testing.T) {
	p := NewPagination(3, 10, 45)

	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 20, p.Offset())
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
}
