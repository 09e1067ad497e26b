package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// pageParams reads ?page & ?size with the usual clamps.
func pageParams(c echo.Context) (page, size int) {
	page = atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size = atoiOr(c.QueryParam("size"), 20)
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}
	return page, size
}

func pathID(c echo.Context) (uint, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

// currentUserID returns the id attached by the auth middleware.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}
