package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

var limitParam = "limit"

// Limit is the `limit` query param, clamped to [1, max].
type Limit struct {
	N int
}

// Bind reads the query param; a missing or malformed value leaves def.
func (l *Limit) Bind(ctx echo.Context, def, max int) {
	l.N = def
	val := ctx.QueryParam(limitParam)
	if val == "" {
		return
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		return
	}
	if n > max {
		n = max
	}
	l.N = n
}
