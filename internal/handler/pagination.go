package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageFrom = 0
	defaultPageSize = 10
	maxPageSize     = 100
)

// parsePagination extracts the from/size query parameters with bounds checks.
func parsePagination(c *gin.Context) (int, int, error) {
	from := defaultPageFrom
	if raw := c.Query("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("from must be a non-negative integer")
		}
		from = parsed
	}

	size := defaultPageSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			return 0, 0, errors.New("size must be an integer between 1 and 100")
		}
		size = parsed
	}

	return from, size, nil
}

// parseIDParam extracts a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}
