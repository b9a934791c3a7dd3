package handler

import (
	"net/http"

	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports service and database health
func HealthCheck(c echo.Context) error {
	if err := database.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
