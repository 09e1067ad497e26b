package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AlexSaifo/school-management-system-sub002/database"
)

// GET /health
func Health(c echo.Context) error {
	status := "ok"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}
