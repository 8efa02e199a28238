package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// paginationParams reads the shared page/limit/sort query parameters with the
// usual bounds applied.
func paginationParams(r *http.Request, defaultSort string) (page, limit int, sortBy, sortOrder string) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	sortBy = r.URL.Query().Get("sort_by")
	sortOrder = r.URL.Query().Get("sort_order")

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if sortBy == "" {
		sortBy = defaultSort
	}
	if strings.ToUpper(sortOrder) != "ASC" && strings.ToUpper(sortOrder) != "DESC" {
		sortOrder = "DESC"
	}
	return page, limit, sortBy, sortOrder
}

func totalPages(totalRecords int64, limit int) int64 {
	pages := (totalRecords + int64(limit) - 1) / int64(limit)
	if pages == 0 && totalRecords > 0 {
		pages = 1
	}
	return pages
}
