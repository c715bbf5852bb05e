package handler // handler defines http handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID parses a numeric path parameter into a uint64. Handlers respond
// with 400 when the second return value is false.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
