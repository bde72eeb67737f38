package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for SQL queries.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// NormalizePagination clamps page and size to sane bounds.
func NormalizePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and page_size from the query string.
func ParsePagination(c *gin.Context) Pagination {
	return NormalizePagination(queryInt(c, "page"), queryInt(c, "page_size"))
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
