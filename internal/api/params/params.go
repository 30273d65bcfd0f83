// Package params reads common query parameters.
package params

import (
	"strconv"

	"cradle-api/internal/domain/apperr"

	"github.com/gin-gonic/gin"
)

const MaxLimit = 200

// Page reads ?limit and ?offset. Limit defaults to def and is capped at
// MaxLimit.
func Page(c *gin.Context, def int) (limit, offset int, err error) {
	limit, err = intParam(c, "limit", def)
	if err != nil {
		return 0, 0, err
	}
	offset, err = intParam(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, offset, nil
}

func intParam(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apperr.Invalid("%s must be a non-negative integer", key)
	}
	return n, nil
}
