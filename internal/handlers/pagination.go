package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// parsePagination reads limit/page query values, clamping limit to [1,100]
// and page to >= 1.
func parsePagination(c fiber.Ctx) (page, limit int) {
	return parsePaginationValues(c.Query("page"), c.Query("limit"))
}

func parsePaginationValues(pageStr, limitStr string) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	limit = defaultLimit
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

// totalPages is ceil(total/limit) for listing metadata.
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
