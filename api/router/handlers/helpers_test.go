package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/scans", nil)
	page, limit, sortBy, sortOrder := paginationParams(r, "created_at")

	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, "created_at", sortBy)
	assert.Equal(t, "DESC", sortOrder)
}

func TestPaginationParamsBounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/scans?page=-3&limit=9999&sort_order=sideways", nil)
	page, limit, _, sortOrder := paginationParams(r, "created_at")

	assert.Equal(t, 1, page, "negative page resets to the first page")
	assert.Equal(t, 20, limit, "out-of-range limit resets to the default")
	assert.Equal(t, "DESC", sortOrder)
}

func TestPaginationParamsExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/scans?page=3&limit=50&sort_by=file_count&sort_order=asc", nil)
	page, limit, sortBy, sortOrder := paginationParams(r, "created_at")

	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)
	assert.Equal(t, "file_count", sortBy)
	assert.Equal(t, "asc", sortOrder, "case is left to the query layer to normalize")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), totalPages(0, 20))
	assert.Equal(t, int64(1), totalPages(1, 20))
	assert.Equal(t, int64(1), totalPages(20, 20))
	assert.Equal(t, int64(2), totalPages(21, 20))
	assert.Equal(t, int64(5), totalPages(100, 20))
}
